package dto

// ScoredFreelancer is a recommendation entry for a client looking at a
// project request.
type ScoredFreelancer struct {
	Profile ProfileResponse `json:"profile"`
	Score   float64         `json:"score"`
}

// ScoredProject is a recommendation entry for a freelancer's feed.
type ScoredProject struct {
	Project ProjectResponse `json:"project"`
	Score   float64         `json:"score"`
}
