package config

// ConfigInitError reports settings that are missing or incomplete before
// veil has been initialized.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}
