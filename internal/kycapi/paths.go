package kycapi

// Upstream endpoints, relative to the configured base URL.
const (
	PathUsers              = "/users"
	PathProfilesPending    = "/profiles/pending"
	PathMatchingPending    = "/matching/pending"
	PathScreeningPPPending = "/screening/pp/pending"
	PathScreeningPMPending = "/screening/pm/pending"
	PathBusinessActivities = "/business-activities"
	PathBusinessActivity   = "/business-activities/{id}"
	PathUploadFiles        = "/upload-files"
)

// Multipart field names of the upload request.
const (
	FieldFiles      = "files"
	FieldUserType   = "user_type"
	FieldUserID     = "userid"
	FieldBucketName = "bucket_name"
)
