package main

import "github.com/Markjohns1/sawarent-messaging/cmd"

func main() {
	cmd.Execute()
}
