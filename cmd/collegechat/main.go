// Command collegechat is a terminal client for the college enquiry chatbot.
package main

import "github.com/rvrjc/collegechat/internal/commands"

func main() {
	commands.Execute()
}
