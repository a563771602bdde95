package storage

// Draft 未提交的上传表单
// Draft is an unsubmitted upload form
type Draft struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	Transcript   string `json:"transcript"`
	MeetingType  string `json:"meeting_type"`
	Participants string `json:"participants"`
	UpdatedAt    string `json:"updated_at"`
}

// IsBlank reports whether the draft holds nothing worth restoring.
func (d Draft) IsBlank() bool {
	return d.Title == "" && d.Transcript == "" && d.Participants == ""
}

// Submission 本客户端提交过的会议
// Submission records a meeting this client created
type Submission struct {
	MeetingID string `json:"meeting_id"`
	Title     string `json:"title"`
	AISuccess bool   `json:"ai_success"`
	Notice    string `json:"notice,omitempty"`
	CreatedAt string `json:"created_at"`
}
