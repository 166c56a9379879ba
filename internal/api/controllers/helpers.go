package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"runmind/internal/services"
	"runmind/pkg/middleware"
	"runmind/pkg/utils"
)

// currentActor reads the identity set by JWTAuthMiddleware.
func currentActor(c *gin.Context) (services.Actor, bool) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return services.Actor{}, false
	}
	return services.Actor{ID: id, Role: c.GetString(middleware.ContextRole)}, true
}

// optionalActor is nil for anonymous requests.
func optionalActor(c *gin.Context) *services.Actor {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		return nil
	}
	return &services.Actor{ID: id, Role: c.GetString(middleware.ContextRole)}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// targetAthlete is the :athleteId path parameter on coach routes and the
// caller on the runner's own routes.
func targetAthlete(c *gin.Context, actor services.Actor) (uuid.UUID, bool) {
	if c.Param("athleteId") == "" {
		return actor.ID, true
	}
	return pathUUID(c, "athleteId")
}
