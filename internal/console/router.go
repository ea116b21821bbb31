// internal/console/router.go
//
// 本檔負責指令註冊：指令名稱 → handler。
// handler.go 定義「如何處理指令」，router.go 定義「指令如何被導向」。
package console

// route 描述一個指令。
type route struct {
	usage string
	run   func(c *Console, args []string) error
}

// routes 建立指令表。採明確註冊，方便閱讀與擴充別名。
func routes() map[string]route {
	r := map[string]route{
		"create":   {usage: "create <savings|checking> <name> <amount>", run: (*Console).create},
		"deposit":  {usage: "deposit <name> <amount>", run: (*Console).deposit},
		"withdraw": {usage: "withdraw <name> <amount>", run: (*Console).withdraw},
		"interest": {usage: "interest", run: (*Console).interest},
		"balance":  {usage: "balance", run: (*Console).balance},
		"history":  {usage: "history", run: (*Console).history},
		"save":     {usage: "save", run: (*Console).save},
		"load":     {usage: "load", run: (*Console).load},
		"audit":    {usage: "audit", run: (*Console).audit},
		"clear":    {usage: "clear", run: (*Console).clear},
		"help":     {usage: "help", run: (*Console).help},
	}

	// 別名
	r["fee"] = r["interest"]
	r["summary"] = r["balance"]
	return r
}

// commandOrder 為 help 輸出的順序。
var commandOrder = []string{
	"create", "deposit", "withdraw", "interest", "balance",
	"history", "save", "load", "audit", "clear", "help",
}
