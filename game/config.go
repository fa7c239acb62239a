package game

import cfgpkg "github.com/softbody-labs/petri/config"

// config returns the global configuration.
func config() *cfgpkg.Config {
	return cfgpkg.Cfg()
}
