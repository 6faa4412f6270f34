package services

// RankForCount maps a user's posted recipe count to a rank label.
// Recomputed after every count change; purely a function of the count.
func RankForCount(postedRecipes int) string {
	switch {
	case postedRecipes >= 16:
		return "Legendary Chef"
	case postedRecipes >= 11:
		return "Master Chef"
	case postedRecipes >= 6:
		return "Professional Chef"
	case postedRecipes >= 1:
		return "Pro"
	default:
		return "Beginner"
	}
}
