package request_models

type DiaryEntryRequest struct {
	EntryDate string `json:"entry_date" binding:"required"`
	Title     string `json:"title" binding:"max=200"`
	Content   string `json:"content" binding:"required"`
	Mood      *int   `json:"mood,omitempty" binding:"omitempty,min=1,max=10"`
}

type CreateDietLogRequest struct {
	LogDate     string   `json:"log_date" binding:"required"`
	Meal        string   `json:"meal" binding:"required,oneof=breakfast lunch dinner snack"`
	Description string   `json:"description"`
	Calories    *int     `json:"calories,omitempty" binding:"omitempty,gte=0"`
	ProteinG    *float64 `json:"protein_g,omitempty" binding:"omitempty,gte=0"`
	CarbsG      *float64 `json:"carbs_g,omitempty" binding:"omitempty,gte=0"`
	FatG        *float64 `json:"fat_g,omitempty" binding:"omitempty,gte=0"`
}

// DietLogPatch lists the fields a partial update may change. A nil field is
// left untouched.
type DietLogPatch struct {
	LogDate     *string  `json:"log_date,omitempty"`
	Meal        *string  `json:"meal,omitempty" binding:"omitempty,oneof=breakfast lunch dinner snack"`
	Description *string  `json:"description,omitempty"`
	Calories    *int     `json:"calories,omitempty" binding:"omitempty,gte=0"`
	ProteinG    *float64 `json:"protein_g,omitempty" binding:"omitempty,gte=0"`
	CarbsG      *float64 `json:"carbs_g,omitempty" binding:"omitempty,gte=0"`
	FatG        *float64 `json:"fat_g,omitempty" binding:"omitempty,gte=0"`
}

func (p DietLogPatch) IsEmpty() bool {
	return p.LogDate == nil && p.Meal == nil && p.Description == nil &&
		p.Calories == nil && p.ProteinG == nil && p.CarbsG == nil && p.FatG == nil
}
