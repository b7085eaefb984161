// Package nav names the portal's fixed routes and the navigation side effect
// shared by the guard and the logout flow.
package nav

const (
	HomePath           = "/"
	LoginPath          = "/login"
	LogoutPath         = "/logout"
	DashboardPath      = "/dashboard"
	ForgotPasswordPath = "/forgot-password"
	SettingsPath       = "/settings"
	LicensesPath       = "/licenses"
)

type Navigator interface {
	Navigate(path string)
}

type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}
