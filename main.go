package main

import (
	"fmt"
	"log"
	"os"

	"github.com/getlantern/systray"
)

var DEFAULT_TITLE = "QuizSnap"

var (
	hotkeyCfg *hotkeyConfig
	store     *recipientStore
	stages    *appStages
	sequence  *sequencer
	listener  *hotkeyListener
)

func main() {
	if err := readConfig(); err != nil {
		log.Printf("%v", err)
	}

	hotkeyPath, err := hotkeyConfigPath()
	if err != nil {
		log.Fatalf("%v", err)
	}
	hotkeyCfg = loadHotkeyConfig(hotkeyPath)

	recipientsPath, err := defaultRecipientsPath()
	if err != nil {
		log.Fatalf("%v", err)
	}
	store = newRecipientStore(recipientsPath)

	stages = newAppStages(store)
	sequence = newSequencer(stages)
	go sequence.run()

	listener = newHotkeyListener(hotkeyCfg, sequence)

	if config.ListenAddress != "" {
		go startServer()
	}

	onExit := func() {
		listener.stop()
		fmt.Println("Exiting...")
	}
	systray.Run(onReady, onExit)
}

func onReady() {
	systray.SetIcon(iconIdle)
	systray.SetTitle(DEFAULT_TITLE)
	systray.SetTooltip("Ready")

	mRun := systray.AddMenuItem("Capture and Answer", "Capture the screen, answer the quiz question and email the result")
	mEnable := systray.AddMenuItemCheckbox("Enable hotkey", "Trigger the sequence by holding the minute digit key", hotkeyCfg.isEnabled())
	mExit := systray.AddMenuItem("Exit", "Exit the application")

	if err := listener.start(); err != nil {
		log.Printf("Error starting hotkey listener: %v", err)
	}

	go func() {
		for {
			select {
			case state := <-sequence.stateCh:
				switch state {
				case stateCapturing:
					systray.SetIcon(iconBusy)
					systray.SetTooltip("Capturing screen...")
				case stateAnalyzing:
					systray.SetTooltip("Analyzing question...")
				case stateEmailing:
					systray.SetTooltip("Sending email...")
				default:
					systray.SetIcon(iconIdle)
					systray.SetTooltip("Ready")
				}

			case <-mRun.ClickedCh:
				sequence.Trigger()

			case <-mEnable.ClickedCh:
				if mEnable.Checked() {
					mEnable.Uncheck()
				} else {
					mEnable.Check()
				}

				if err := hotkeyCfg.setEnabled(mEnable.Checked()); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing hotkey config: %v\n", err)
				}

			case <-mExit.ClickedCh:
				systray.Quit()

			}
		}
	}()
}
