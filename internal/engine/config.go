package engine

// Config configures whichever Engine implementation is selected at
// startup (EXECUTION_MODE), grounded on the teacher's
// engine.Config{EnableSeccomp,EnableCgroup,EnableNamespaces} flags.
type Config struct {
	CgroupRoot      string
	SeccompProfile  string
	EnableSeccomp   bool
	EnableCgroup    bool
	EnableNamespace bool
}
