package models

// AnalyticsSnapshot is the aggregate rendered by the analytics dashboard.
// It is recomputed on every refresh and never stored.
type AnalyticsSnapshot struct {
	TotalUsers        int `json:"total_users"`
	VerifiedUsers     int `json:"verified_users"`
	PendingProfiles   int `json:"pending_profiles"`
	CompletedProfiles int `json:"completed_profiles"`
	ScreeningQueue    int `json:"screening_queue"`
	MatchingQueue     int `json:"matching_queue"`
}

// VerificationRate is the share of verified users, in percent.
func (s AnalyticsSnapshot) VerificationRate() int {
	return Percentage(s.VerifiedUsers, s.TotalUsers)
}

// CompletionRate is the share of users with a completed profile, in percent.
func (s AnalyticsSnapshot) CompletionRate() int {
	return Percentage(s.CompletedProfiles, s.TotalUsers)
}

// Percentage returns round(100*part/total), rounding halves up.
// A non-positive total yields 0.
func Percentage(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	return (200*part + total) / (2 * total)
}

// AnalyticsResponse is the JSON shape served by /api/analytics.
type AnalyticsResponse struct {
	AnalyticsSnapshot
	VerificationRate int  `json:"verification_rate"`
	CompletionRate   int  `json:"completion_rate"`
	Loading          bool `json:"loading"`
}

func (s AnalyticsSnapshot) ToResponse(loading bool) AnalyticsResponse {
	return AnalyticsResponse{
		AnalyticsSnapshot: s,
		VerificationRate:  s.VerificationRate(),
		CompletionRate:    s.CompletionRate(),
		Loading:           loading,
	}
}

// User verification statuses counted by the dashboard.
const (
	UserStatusVerified  = "VERIFIED"
	UserStatusCompleted = "COMPLETED"
)

// UserSummary is the part of an upstream user record the dashboard reads.
type UserSummary struct {
	UserVerificationStatus string `json:"userVerificationStatus"`
}
