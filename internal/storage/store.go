package storage

// DefaultDraftKey is the slot used by the upload form.
const DefaultDraftKey = "upload"

// Store 本地持久化接口
// Store is the local persistence interface
type Store interface {
	// 草稿 / Drafts
	SaveDraft(d Draft) error
	LoadDraft(key string) (Draft, bool, error)
	DeleteDraft(key string) error

	// 提交记录 / Submissions
	RecordSubmission(s Submission) error
	ListSubmissions(limit int) ([]Submission, error)

	// 生命周期 / Lifecycle
	Close() error
}
