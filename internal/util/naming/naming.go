package naming

import (
	"fmt"
	"path/filepath"
)

// Object keys of the assets uploaded to the save data bucket.
const (
	BootstrapScriptKey = "assets/install.sh"
	TemplateKey        = "assets/html-template.html"
)

func Instance(prefix string) string {
	if prefix == "" {
		return "game-server"
	}
	return fmt.Sprintf("%s-server", prefix)
}

func SecurityGroup(prefix string) string {
	return fmt.Sprintf("%s-game-ports", prefix)
}

func Volume(prefix string) string {
	return fmt.Sprintf("%s-saves", prefix)
}

func StateFile(dir, prefix string) string {
	return filepath.Join(dir, prefix+".yaml")
}

func EnvFile(dir, prefix string) string {
	return filepath.Join(dir, prefix+".env")
}
