package cli

import (
	"github.com/spf13/viper"

	"uvm/internal/app"
)

// newAppService builds the service from the persistent flags, which are
// bound to viper keys and so also pick up config and environment values.
func newAppService() (app.Service, error) {
	return app.NewService(app.Config{
		InstallRoot:         viper.GetString("install_root"),
		SearchRoots:         viper.GetStringSlice("search_roots"),
		ScanInclude:         viper.GetStringSlice("scan_include"),
		ScanWorkers:         viper.GetInt("scan_workers"),
		InstallerBaseURL:    viper.GetString("installer_base_url"),
		InstallerRetries:    viper.GetInt("installer_retries"),
		InstallerTimeoutSec: viper.GetInt("installer_timeout_sec"),
		MetricsTextfile:     viper.GetString("metrics_textfile"),
	})
}
