package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"lime/compiler"
	"lime/vm"
)

// Lime's CLI mirrors original_source/main.c's top-level --c / --x mode
// switch, but fixes two bugs the original has: it no longer always
// auto-execs after compiling, and it no longer always writes a
// hardcoded "out.asm" disassembly -- both are independent, flag-driven
// steps here. It also exits nonzero on any diagnostic instead of the
// original's exit(0).
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "--c":
		os.Exit(runCompile(os.Args[2:]))
	case "--x":
		os.Exit(runExecute(os.Args[2:]))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lime --c [--stdin] [--dasm <file>] (--exec | --gen <file>) [<source>]")
	fmt.Fprintln(os.Stderr, "       lime --x <file.lmx>")
}

func runCompile(args []string) int {
	fs := flag.NewFlagSet("lime --c", flag.ContinueOnError)
	stdin := fs.Bool("stdin", false, "read source from stdin")
	dasmPath := fs.String("dasm", "", "write disassembly to this file")
	exec := fs.Bool("exec", false, "execute immediately after compiling")
	genPath := fs.String("gen", "", "write a .lmx bytecode image to this file")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	var src []byte
	var err error
	if *stdin {
		src, err = io.ReadAll(os.Stdin)
	} else {
		rest := fs.Args()
		if len(rest) != 1 {
			usage()
			return 1
		}
		src, err = os.ReadFile(rest[0])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if !*exec && *genPath == "" {
		fmt.Fprintln(os.Stderr, "--c requires --exec or --gen")
		return 1
	}

	prog, err := compiler.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	img, err := compiler.CompileProgram(prog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *dasmPath != "" {
		f, err := os.Create(*dasmPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		if err := vm.Disassemble(img.Code, f); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if *genPath != "" {
		if err := vm.SaveImage(*genPath, img); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if *exec {
		return runImage(img)
	}
	return 0
}

func runExecute(args []string) int {
	if len(args) != 1 {
		usage()
		return 1
	}
	img, err := vm.LoadImage(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return runImage(img)
}

func runImage(img vm.Image) int {
	m := vm.NewVM(img)
	if err := m.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
