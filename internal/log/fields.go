package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldEntryID     = "entry_id"
	FieldProjectID   = "project_id"
	FieldClientID    = "client_id"
	FieldClientName  = "client_name"
	FieldDescription = "description"
	FieldDurationSec = "duration_sec"
	FieldWindowStart = "window_start"
	FieldWindowEnd   = "window_end"
	FieldBatchSize   = "batch_size"
	FieldStatusCode  = "status_code"
	FieldURL         = "url"
	FieldTimezone    = "timezone"
	FieldSpreadsheet = "spreadsheet_id"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentConfig    = "config"
	ComponentToggl     = "toggl"
	ComponentLookup    = "lookup"
	ComponentStorage   = "storage"
	ComponentReconcile = "reconcile"
	ComponentReport    = "report"
	ComponentSheets    = "sheets"
)

// Operations defines standard operation names
const (
	OpFetch     = "fetch"
	OpResolve   = "resolve"
	OpAggregate = "aggregate"
	OpCommit    = "commit"
	OpExport    = "export"
	OpRender    = "render"
	OpValidate  = "validate"
	OpStartup   = "startup"
)
