package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	pixveilVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	pixveil := NewAppBuild("pixveil", "cmd/pixveil", pixveilVersion)
	pixveil.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			CgoEnabled(false)
	})
	pixveil.Variant("windows", "amd64")
	pixveil.Variant("linux", "amd64")
	pixveil.Variant("linux", "arm64")
	pixveil.Variant("darwin", "amd64")
	pixveil.Variant("darwin", "arm64")
	b.ImportApp(pixveil)

	b.Execute()
}
