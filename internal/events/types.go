package events

// Event type names emitted by the engine. They are part of the sink contract:
// bridges and external sinks dispatch on these strings.
const (
	TypeLoginSuccess    = "login_success"
	TypeLoginFailure    = "login_failure"
	TypeRegisterSuccess = "register_success"
	TypeRegisterFailure = "register_failure"
	TypeLogout          = "logout"
	TypeSessionRestored = "session_restored"
	TypeRestoreCorrupt  = "session_restore_corrupt"
	TypeRestoreEmpty    = "session_restore_empty"
)
