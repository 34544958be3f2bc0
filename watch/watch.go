//The interface to watch for changes

// Package watch contains the watch.Execute function called by the main command line interface
package watch

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dakusan/goplural/execute"
	"github.com/fsnotify/fsnotify"
)

// ReturnData is the data that is returned through a channel from watch.Execute when it processes rule files
type ReturnData struct {
	Type    ReturnType
	Locales execute.ProcessedLocaleList //Only on ReturnType=WR_ProcessedDirectory
	Err     error                       //Only on ReturnType=WR_ProcessedDirectory or WR_ErroredOut
	Message string                      //Only on ReturnType=WR_Message
}

type ReturnType int

//goland:noinspection GoSnakeCaseUsage
const (
	WR_Message            ReturnType = iota //An informative message is being sent
	WR_ProcessedDirectory                   //Directory() was called due to initialization or a rule file update
	WR_ErroredOut                           //The watch could not be started or has closed
	WR_CloseRequested                       //Process close was requested
)

// Execute compiles and verifies the rule files in the InputPath directory.
//
// It continually watches the directory for relevant changes in its own goroutine. A change to either rule file rebuilds both dispatch tables, since predicates are shared across the rule families.
func Execute(settings *execute.ProcessSettings) <-chan ReturnData {
	ret := make(chan ReturnData, 10)
	go execWatchReal(settings, ret)
	return ret
}

func execWatchReal(settings *execute.ProcessSettings, ret chan<- ReturnData) {
	//Send a message ReturnData
	sendMessage := func(message string) {
		ret <- ReturnData{WR_Message, nil, nil, message}
	}

	//Create the watcher
	var watcher *fsnotify.Watcher
	if _watcher, err := fsnotify.NewWatcher(); err != nil {
		ret <- ReturnData{WR_ErroredOut, nil, err, ""}
		return
	} else {
		watcher = _watcher
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(settings.InputPath); err != nil {
		ret <- ReturnData{WR_ErroredOut, nil, err, ""}
		return
	}

	//Execute the primary Directory() function first before we start watching
	{
		locales, err := settings.Directory()
		ret <- ReturnData{WR_ProcessedDirectory, locales, err, ""}
	}

	//Keeps a list of file changes that have happened within the last $timeoutWatch
	//These are cancelled if a duplicate event occurs within the timeout
	const timeoutWatch = time.Millisecond * 100
	recentWatches := make(map[string]*bool) //If the bool pointer is set to true then the event is cancelled
	var recentWatchesMutex sync.RWMutex

	//Handle os shutdown signal
	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt)
	signal.Notify(shutdownSignal, syscall.SIGTERM)

	//Execute the watcher
	sendMessage("Initiating watch")
	for {
		select {
		//Return error message
		case err, ok := <-watcher.Errors:
			if !ok {
				ret <- ReturnData{WR_ErroredOut, nil, errors.New("Watcher was closed out"), ""}
				return
			}
			sendMessage("Watcher sent an error: " + err.Error())
		//Process an event
		case event, ok := <-watcher.Events:
			//Check for valid event
			fName := strings.ReplaceAll(event.Name, "\\", "/")
			if !ok {
				ret <- ReturnData{WR_ErroredOut, nil, errors.New("Watcher was closed out"), ""}
				return
			} else if !strings.HasPrefix(fName, settings.InputPath) {
				sendMessage(fmt.Sprintf("Changed file “%s” did not have the correct input path “%s”", fName, settings.InputPath))
				continue
			}
			fName = fName[len(settings.InputPath):]
			if !event.Has(fsnotify.Write | fsnotify.Create) { //Ignore Rename and Delete since file no longer exists
				continue
			} else if fName != settings.CardinalFile && fName != settings.OrdinalFile {
				continue
			}

			//Wait for $timeoutWatch before executing. If a duplicate event comes in, erase the previous event
			go func() {
				//If the event already exists then mark it as cancelled
				recentWatchesMutex.Lock()
				eventKey := event.String()
				if b, exists := recentWatches[eventKey]; exists {
					*b = true
				}

				//Add a cancellable bool for this event
				isCancelled := false
				recentWatches[eventKey] = &isCancelled
				recentWatchesMutex.Unlock()

				//Wait for the timeout to check and see if cancelled
				time.Sleep(timeoutWatch)

				//See if the event was cancelled and exit if so
				recentWatchesMutex.Lock()
				if isCancelled {
					recentWatchesMutex.Unlock()
					return
				}

				//Remove self from the recent watches list
				delete(recentWatches, eventKey)
				recentWatchesMutex.Unlock()

				//Send message about change and rebuild the tables
				sendMessage(fmt.Sprintf("%s: Change (%s) occurred on “%s”", time.Now().Format("2006-01-02 15:04:05"), event.Op.String(), fName))
				locales, err := settings.Directory()
				ret <- ReturnData{WR_ProcessedDirectory, locales, err, ""}
			}()
		case <-shutdownSignal:
			ret <- ReturnData{WR_CloseRequested, nil, nil, ""}
			return
		}
	}
}
