package memcache_fx

import (
	"go.uber.org/fx"

	mem "runmind/pkg/memcache"
)

var Module = fx.Provide(provideOAuthStates, provideResetTokens)

func provideOAuthStates() mem.OAuthStateStore {
	return mem.NewOAuthStates()
}

func provideResetTokens() mem.ResetTokenStore {
	return mem.NewResetTokens()
}
