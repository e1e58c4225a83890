package types

// UpdateProfileRequest carries the profile fields to change. Nil fields are
// left untouched.
type UpdateProfileRequest struct {
	Name             *string  `json:"name"`
	PhotoURL         *string  `json:"photo_url"`
	DailyCalorieGoal *float64 `json:"daily_calorie_goal" binding:"omitempty,gte=0"`
}

// Empty reports whether the request changes nothing.
func (r *UpdateProfileRequest) Empty() bool {
	return r.Name == nil && r.PhotoURL == nil && r.DailyCalorieGoal == nil
}
