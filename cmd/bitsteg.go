package main

import (
	"bitsteg/internal/cli"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM) // subscribe to system signals
	go func() {
		<-c
		cli.StopProfilers()
		os.Exit(0)
	}()

	if err := cli.RootCommand().Execute(); err != nil {
		cli.StopProfilers()
		os.Exit(1)
	}
}
