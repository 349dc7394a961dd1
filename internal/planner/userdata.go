package planner

import (
	"path"
	"strings"

	"github.com/kballard/go-shellquote"
)

// awsCLIInstall installs AWS CLI v2, which the bootstrap routine uses for
// save data backups and which downloads the routine itself.
const awsCLIInstall = `curl "https://awscli.amazonaws.com/awscli-exe-linux-x86_64.zip" -o "awscliv2.zip" && unzip awscliv2.zip && ./aws/install`

// Prefixes of the lines that carry static storage credentials.
const (
	accessKeyCommand = "aws configure set aws_access_key_id "
	secretKeyCommand = "aws configure set aws_secret_access_key "
)

// UserData accumulates the first-boot shell script of an instance.
type UserData struct {
	lines []string
}

// NewLinuxUserData starts a bash user data script.
func NewLinuxUserData() *UserData {
	return &UserData{lines: []string{"#!/bin/bash"}}
}

// AddCommands appends raw shell commands.
func (u *UserData) AddCommands(cmds ...string) {
	u.lines = append(u.lines, cmds...)
}

// AddCLIInstall installs the general-purpose storage CLI.
func (u *UserData) AddCLIInstall() {
	u.AddCommands(
		"sudo apt-get update -y",
		"sudo apt-get install unzip -y",
		awsCLIInstall,
	)
}

// AddCredentials configures static storage credentials for the CLI.
func (u *UserData) AddCredentials(accessKey, secretKey string) {
	u.AddCommands(
		accessKeyCommand+shellquote.Join(accessKey),
		secretKeyCommand+shellquote.Join(secretKey),
	)
}

// AddEndpoint points the CLI at an S3-compatible endpoint, so the bootstrap
// routine reaches the same storage for backups.
func (u *UserData) AddEndpoint(endpoint string) {
	u.AddCommands("aws configure set endpoint_url " + shellquote.Join(endpoint))
}

// AddS3DownloadCommand downloads src into /tmp and returns the local path.
func (u *UserData) AddS3DownloadCommand(src BootstrapSource, region string) string {
	localPath := path.Join("/tmp", src.Key)

	cp := []string{"aws", "s3", "cp", "s3://" + src.Bucket + "/" + src.Key, localPath}
	if src.Endpoint != "" {
		cp = append(cp, "--endpoint-url", src.Endpoint)
	}
	if region != "" {
		cp = append(cp, "--region", region)
	}

	u.AddCommands(
		"mkdir -p $(dirname "+shellquote.Join(localPath)+")",
		shellquote.Join(cp...),
	)
	return localPath
}

// AddExecuteFileCommand runs filePath once with args. A failure aborts the
// script; nothing retries it.
func (u *UserData) AddExecuteFileCommand(filePath string, args BootstrapArgs) {
	u.AddCommands(
		"set -e",
		"chmod +x "+shellquote.Join(filePath),
		shellquote.Join(filePath)+" "+args.String(),
	)
}

// Render returns the script.
func (u *UserData) Render() string {
	return strings.Join(u.lines, "\n") + "\n"
}

// withoutCredentials drops the credential lines of a rendered script, so
// rotating a key does not change what the instance runs.
func withoutCredentials(script string) string {
	lines := strings.Split(script, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, accessKeyCommand) || strings.HasPrefix(line, secretKeyCommand) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
