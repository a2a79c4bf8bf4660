/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"

	"github.com/kraken-mutate/mutantkraken/cmd"
	"github.com/kraken-mutate/mutantkraken/internal/log"
	"github.com/kraken-mutate/mutantkraken/internal/mkerrors"

	// The concrete target-language parser is an external collaborator
	// and is not bundled here; a real build wires one in by importing
	// it here for its parsetree.Register side effect, e.g.:
	//
	//   _ "github.com/kraken-mutate/mutantkraken-kotlin-parser"
)

var version = "dev"

func main() {
	var fatalErr *mkerrors.FatalError
	exitCode := 0
	defer func() {
		os.Exit(exitCode)
	}()

	log.Init(log.Info, color.Output, "")
	ctx := ctxDoneOnSignal()

	err := cmd.Execute(ctx, buildVersion(version))
	if err != nil {
		log.Errorf("%s", err)
		exitCode = 1
	}
	if errors.As(err, &fatalErr) {
		exitCode = fatalErr.ExitCode()
	}
}

func ctxDoneOnSignal() context.Context {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-done
		cancel()
		close(done)
	}()

	return ctx
}

func buildVersion(version string) string {
	return fmt.Sprintf("%s %s/%s", version, runtime.GOOS, runtime.GOARCH)
}
