package activity

const (
	BusinessActivityCreated = "BUSINESS_ACTIVITY_CREATED"
	BusinessActivityUpdated = "BUSINESS_ACTIVITY_UPDATED"
	BusinessActivityDeleted = "BUSINESS_ACTIVITY_DELETED"
	FilesUploaded           = "FILES_UPLOADED"
)

// Actions and object types used as search filters.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionUpload = "upload"

	ObjectBusinessActivity = "business_activity"
	ObjectDocument         = "document"
)

// SearchableFields are the query parameters accepted by the activity search.
var SearchableFields = []string{"action", "object_type", "object_id", "user_type", "user_id", "bucket_name"}
