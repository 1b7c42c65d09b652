package cli

import (
	"fmt"

	"github.com/diillson/aws-idle-notifier/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         ___    _ _        _   _       _   _  __ _           
        |_ _|__| | | ___  | \ | | ___ | |_(_)/ _(_) ___ _ __ 
         | |/ _' | |/ _ \ |  \| |/ _ \| __| | |_| |/ _ \ '__|
         | | (_| | |  __/ | |\  | (_) | |_| |  _| |  __/ |   
        |___\__,_|_|\___| |_| \_|\___/ \__|_|_| |_|\___|_|   
        `
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(yellow(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("AWS Idle Notifier CLI (v%s)", formattedVersion)))
}

// checkLatestVersion verifica se uma versão mais recente está disponível.
func checkLatestVersion(currentVersion string) {
	version.CheckLatestVersion(currentVersion)
}
