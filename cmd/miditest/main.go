package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-tempochange/midi"
	"go-tempochange/sequencer"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "click":
		clickPort(os.Args[2:])
	case "poll":
		pollPorts()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                      - List MIDI output ports")
	fmt.Println("  click [port] [bpm] [n]    - Send n clicks to a port (default: first port, 120 bpm, 8)")
	fmt.Println("  poll                      - Poll for output port changes")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names, err := midi.OutPortNames()
	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func clickPort(args []string) {
	port, bpm, count := "", 120.0, 8
	if len(args) > 0 {
		port = args[0]
	}
	if len(args) > 1 {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil || v <= 0 {
			fmt.Printf("bad bpm %q\n", args[1])
			return
		}
		bpm = v
	}
	if len(args) > 2 {
		v, err := strconv.Atoi(args[2])
		if err != nil || v < 1 {
			fmt.Printf("bad count %q\n", args[2])
			return
		}
		count = v
	}

	click, err := midi.OpenClick(midi.ClickConfig{
		PortName: port,
		Channel:  9,
		Note:     76,
		Velocity: 100,
		Gate:     50 * time.Millisecond,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer click.Close()

	interval := sequencer.BeatInterval(bpm)
	fmt.Printf("Sending %d clicks at %.0f bpm (%s apart)...\n", count, bpm, interval)
	for i := 0; i < count; i++ {
		click.Click()
		fmt.Printf("  %d\n", i+1)
		time.Sleep(interval)
	}
	fmt.Println("Done!")
}

func pollPorts() {
	fmt.Println("Polling for output port changes every 2 seconds...")
	fmt.Println("Connect/disconnect a device to test. Ctrl+C to exit.")

	last := ""
	for {
		names, err := midi.OutPortNames()
		if err != nil {
			fmt.Printf("[%s] %v\n", time.Now().Format("15:04:05"), err)
			time.Sleep(2 * time.Second)
			continue
		}

		current := strings.Join(names, ",")
		if current != last {
			fmt.Printf("\n[%s] Port change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Outputs: %v\n", names)
			last = current
		}

		time.Sleep(2 * time.Second)
	}
}
