package domain

// InstallContext carries the values collected and generated during one run.
// Fields are written once by the step that owns them.
type InstallContext struct {
	Domain string
	Email  string

	DBRootPassword string
	DBPassword     string
	RedisPassword  string

	OS OSInfo
}

type OSInfo struct {
	ID      string
	Version string
}

func (info OSInfo) String() string {
	if info.Version == "" {
		return info.ID
	}
	return info.ID + " " + info.Version
}
