package config

// Environment is the deployment environment the API runs in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	Production  Environment = "production"
)

// String returns the string representation of the environment.
func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether the environment is production.
func (e Environment) IsProduction() bool {
	return e == Production
}

func (e Environment) valid() bool {
	switch e {
	case Development, Test, Production:
		return true
	}
	return false
}
