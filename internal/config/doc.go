// Package config defines the provisioning configuration read from
// gamehost.yaml and the runtime configuration of the start service read
// from the environment.
//
// [Config] describes one deployment: provider, region, machine image and
// size, optional existing network and storage, and whether the start
// endpoint is exposed. [Runtime] is what `gamehost serve` needs to start a
// single recorded instance and render the status page.
package config
