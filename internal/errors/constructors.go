package errors

import "fmt"

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *SiteError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *SiteError {
	return New(CategoryValidation, SeverityFatal, fmt.Sprintf("validation failed: %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Build chain errors

func BuildFailed(stage string, cause error) *SiteError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func WorkspaceError(operation string, cause error) *SiteError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "workspace operation failed").
		WithContext("operation", operation)
}

func LintFailed(errorCount int) *SiteError {
	return New(CategoryLint, SeverityFatal, "source lint failed").
		WithContext("errors", errorCount)
}

// Content fetch errors

func ContentCloneError(url string, cause error) *SiteError {
	return Wrap(cause, CategoryContent, SeverityFatal, "content clone failed").
		WithContext("url", url)
}

func ContentNetworkError(url string, cause error) *SiteError {
	return WrapRetryable(cause, CategoryContent, SeverityWarning, "content fetch network error").
		WithContext("url", url)
}

// Server errors

func PortInUse(port int, cause error) *SiteError {
	return Wrap(cause, CategoryServer, SeverityFatal, "listen port unavailable").
		WithContext("port", port)
}

// Sandbox errors

func SandboxUnavailable(engine string, cause error) *SiteError {
	return Wrap(cause, CategorySandbox, SeverityFatal, "container engine not available").
		WithContext("engine", engine)
}

func SandboxRunError(image string, exitCode int, cause error) *SiteError {
	return Wrap(cause, CategorySandbox, SeverityFatal, "sandboxed run failed").
		WithContext("image", image).
		WithContext("exit_code", exitCode)
}

// Internal errors

func InternalError(message string, cause error) *SiteError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
