package skills

import (
	"context"

	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/spf13/viper"
)

// Initialize builds a Discovery from configuration.
// It reads skills.dirs, skills.plugin_dirs, skills.allowed and skills.builtins.
// When no directories are configured the defaults are used.
func Initialize(ctx context.Context) (*Discovery, error) {
	var opts []Option

	dirs := viper.GetStringSlice("skills.dirs")
	pluginDirs := viper.GetStringSlice("skills.plugin_dirs")
	if len(dirs) == 0 && len(pluginDirs) == 0 {
		opts = append(opts, WithDefaultDirs())
	} else {
		opts = append(opts, WithSkillDirs(dirs...), WithPluginDirs(pluginDirs...))
	}

	if allowed := viper.GetStringSlice("skills.allowed"); len(allowed) > 0 {
		opts = append(opts, WithAllowlist(allowed...))
	}

	builtins := true
	if viper.IsSet("skills.builtins") {
		builtins = viper.GetBool("skills.builtins")
	}
	opts = append(opts, WithBuiltins(builtins))

	discovery, err := NewDiscovery(opts...)
	if err != nil {
		return nil, err
	}

	logger.G(ctx).WithFields(map[string]interface{}{
		"dirs":        dirs,
		"plugin_dirs": pluginDirs,
		"builtins":    builtins,
	}).Debug("skill discovery configured")

	return discovery, nil
}
