package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/arborian/nescore/cartridge"
	"github.com/arborian/nescore/console"
	"github.com/hajimehoshi/ebiten/v2"
)

var romFile = flag.String("nes_rom", "", "Path to NES ROM to run.")

func main() {
	flag.Parse()

	cart, err := cartridge.Load(*romFile)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}

	nes := console.New(cart)

	ctx, cancel := context.WithCancel(context.Background())
	go func(ctx context.Context) {
		nes.Run(ctx)
	}(ctx)

	if err := ebiten.RunGame(nes); err != nil {
		log.Fatal(err)
	}

	cancel()
	os.Exit(0)
}
