package models

// Rejection describes a row that failed validation.
type Rejection struct {
	Sheet  string `json:"sheet" yaml:"sheet"`
	Cell   string `json:"cell" yaml:"cell"`
	Reason string `json:"reason" yaml:"reason"`
}

// SheetFailure records a sheet skipped because of a structural error.
type SheetFailure struct {
	Sheet   string `json:"sheet" yaml:"sheet"`
	Message string `json:"message" yaml:"message"`
}

// Stats summarises a conversion run.
type Stats struct {
	EmailBriefs     int `json:"email_briefs" yaml:"email_briefs"`
	SMSBriefs       int `json:"sms_briefs" yaml:"sms_briefs"`
	ProductLaunches int `json:"product_launches" yaml:"product_launches"`
	SheetsProcessed int `json:"sheets_processed" yaml:"sheets_processed"`
	TotalTasks      int `json:"total_tasks" yaml:"total_tasks"`
}

// ConversionResult is the aggregate output of one conversion run.
// It is not modified after Convert returns.
type ConversionResult struct {
	// Brand is the brand tag applied to every task.
	Brand string `json:"brand" yaml:"brand"`
	// BookName is the source workbook file name.
	BookName string `json:"book_name" yaml:"book_name"`
	// Tasks holds valid tasks in sheet order.
	Tasks []TaskRecord `json:"tasks" yaml:"tasks"`
	// Rejections holds rows that failed validation.
	Rejections []Rejection `json:"rejections,omitempty" yaml:"rejections,omitempty"`
	// SheetFailures holds sheets skipped for structural errors.
	SheetFailures []SheetFailure `json:"sheet_failures,omitempty" yaml:"sheet_failures,omitempty"`
	// Stats summarises the run.
	Stats Stats `json:"stats" yaml:"stats"`
}
