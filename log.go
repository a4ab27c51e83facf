package main

import "log"

var debugEnabled bool

func setDebug(enable bool) {
	debugEnabled = enable
}

// Debug logs a debug message when -debug is set
func Debug(args ...interface{}) {
	if !debugEnabled {
		return
	}
	log.Print(append([]interface{}{"DEBUG: "}, args...)...)
}

// Debugf logs a formatted debug message when -debug is set
func Debugf(format string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	log.Printf("DEBUG: "+format, args...)
}
