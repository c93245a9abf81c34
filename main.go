package main

import (
	"github.com/mj1618/wintitle/cmd"

	_ "github.com/mj1618/wintitle/internal/platform/windows"
	_ "github.com/mj1618/wintitle/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
