package main

import "github.com/wxbak/wechat-session/cmd"

func main() {
	cmd.Execute()
}
