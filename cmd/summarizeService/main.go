package main

import (
	"bitbucket.org/airenas/meetsum/internal/app/summarize"
	"github.com/labstack/gommon/color"
)

func main() {
	printBanner()
	summarize.Execute()
}

var (
	version string
)

func printBanner() {
	banner := `
                        __                        
   ____ ___  ___  ___  / /________  ______ ___ 
  / __ ` + "`" + `__ \/ _ \/ _ \/ __/ ___/ / / / __ ` + "`" + `__ \
 / / / / / /  __/  __/ /_(__  ) /_/ / / / / / /
/_/ /_/ /_/\___/\___/\__/____/\__,_/_/ /_/ /_/  v: %s
%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("bitbucket.org/airenas/meetsum"))
}
