package errors

// Error message constants for the seri-sei application
const (
	// File processing errors
	ErrMsgFailedToReadFile   = "failed to read file"
	ErrMsgFailedToWriteFile  = "failed to write file"
	ErrMsgFailedToLoadConfig = "failed to load configuration"

	// Directory processing errors
	ErrMsgFailedToCheckPath       = "failed to check path"
	ErrMsgFailedToFindSourceFiles = "failed to find source files in directory"
	ErrMsgFilesFailedToProcess    = "%d files failed to process"
	ErrMsgFilesNeedFormatting     = "%d files need formatting"
	ErrMsgPathDoesNotExist        = "path does not exist: %s"

	// Info/warning messages
	WarnMsgProcessingDirWithoutWrite = "Warning: Processing directory without --write flag. No files will be modified."
	InfoMsgUseWriteFlag              = "Use --write to modify files or specify a single file for stdout output."
	InfoMsgNoSourceFilesFound        = "No source files found in directory: %s"
	InfoMsgFoundSourceFiles          = "Found %d source files in directory: %s"
	InfoMsgProcessedFile             = "Formatted: %s"
	InfoMsgNeedsFormatting           = "Needs formatting: %s"
	InfoMsgErrorProcessing           = "Error processing %s: %v"
	InfoMsgProcessedCount            = "\nProcessed %d files successfully"
	InfoMsgErrorCount                = ", %d files had errors"
)
