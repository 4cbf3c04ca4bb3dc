package tritonhttp

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// VHConfigs is a struct to hold the virtual host configuration
type VHConfigs struct {
	VirtualHosts []struct {
		HostName string `yaml:"hostName"`
		DocRoot  string `yaml:"docRoot"`
	} `yaml:"virtual_hosts"`
}

// ParseVHConfigFile parses the virtual host configuration file (YAML) and returns a map
// of virtual hosts to their docroot paths.
func ParseVHConfigFile(vhConfigFilePath string, docrootDirsPath string) (map[string]string, error) {
	f, err := os.ReadFile(vhConfigFilePath)
	if err != nil {
		return nil, fmt.Errorf("read configuration file %s: %w", vhConfigFilePath, err)
	}

	vhostConfigs := VHConfigs{}
	if err := yaml.Unmarshal(f, &vhostConfigs); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", vhConfigFilePath, err)
	}

	vhMap := make(map[string]string)
	for _, vhost := range vhostConfigs.VirtualHosts {
		if vhost.HostName == "" {
			return nil, fmt.Errorf("%s: virtual host with empty hostName", vhConfigFilePath)
		}

		docrootPath := filepath.Join(docrootDirsPath, vhost.DocRoot)
		if _, err := os.Stat(docrootPath); err != nil {
			return nil, fmt.Errorf("docroot of %s: %w", vhost.HostName, err)
		}

		vhMap[vhost.HostName] = docrootPath
	}

	return vhMap, nil
}
