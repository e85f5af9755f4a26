package vm

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// StepOnce executes a single instruction, for the debug REPL's "next"
// command. It returns false once the program has finished or failed.
func (v *VM) StepOnce() bool {
	if v.err != nil {
		return false
	}
	if v.ip >= len(v.code) {
		v.fail(errProgramFinished)
		return false
	}
	v.step()
	return v.err == nil
}

func (v *VM) Err() error { return v.err }
func (v *VM) IP() int    { return v.ip }

// RunDebug runs the program under an interactive single-step REPL,
// grounded on the teacher's RunProgramDebugMode: "n"/"next" advances one
// instruction, "r"/"run" free-runs to completion or the next breakpoint,
// "b"/"break <ip>" toggles a breakpoint at a byte offset.
func (v *VM) RunDebug() {
	fmt.Print("Commands:\n\tn or next: execute next instruction\n\tr or run: run program\n\tb or break <ip>: toggle breakpoint\n\n")
	fmt.Println(v.DebugString())

	reader := bufio.NewReader(os.Stdin)
	waitForInput := true
	breakpoints := make(map[int]struct{})
	lastBreak := -1

	for {
		line := ""
		if waitForInput {
			fmt.Print("\n->")
			line, _ = reader.ReadString('\n')
			line = strings.ToLower(strings.TrimSpace(line))
		} else {
			if _, ok := breakpoints[v.ip]; ok && v.ip != lastBreak {
				fmt.Println("breakpoint")
				fmt.Println(v.DebugString())
				waitForInput = true
				lastBreak = v.ip
				continue
			}
		}

		switch {
		case !waitForInput || line == "n" || line == "next":
			lastBreak = -1
			if !v.StepOnce() {
				v.stdout.Flush()
				if v.err != nil && v.err != errProgramFinished {
					fmt.Println(v.err)
				}
				return
			}
			if waitForInput {
				fmt.Println(v.DebugString())
			}
		case line == "r" || line == "run":
			waitForInput = false
		case strings.HasPrefix(line, "b"):
			arg := strings.TrimSpace(strings.TrimPrefix(line, "b"))
			arg = strings.TrimPrefix(arg, "reak")
			arg = strings.TrimSpace(arg)
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("unknown offset:", err)
				continue
			}
			if _, ok := breakpoints[n]; ok {
				delete(breakpoints, n)
			} else {
				breakpoints[n] = struct{}{}
			}
		}
	}
}
