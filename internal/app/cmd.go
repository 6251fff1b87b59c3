// Package app はposledgerプロセスの起動とワイヤリングを行う。
package app

// Command はアプリケーションの起動モードを表す。
type Command string

const (
	// CommandServe はAPIサーバーを起動する。
	CommandServe Command = "serve"
	// CommandMigrate はスキーマのマイグレーションだけを実行して終了する。
	// serveは暗黙にマイグレーションしない。
	CommandMigrate Command = "migrate"
	// CommandHealthcheck は稼働中サーバーの/healthを叩いて終了コードで返す。
	// distrolessイメージのHEALTHCHECK用。
	CommandHealthcheck Command = "healthcheck"
)

var knownCommands = map[string]Command{
	string(CommandServe):       CommandServe,
	string(CommandMigrate):     CommandMigrate,
	string(CommandHealthcheck): CommandHealthcheck,
}

// ParseCommand は先頭の引数からサブコマンドを解析する。
// 空または未知のサブコマンドはserveとして扱い、okにfalseを返す（空の場合はtrue）。
func ParseCommand(args []string) (cmd Command, ok bool) {
	if len(args) == 0 {
		return CommandServe, true
	}
	if cmd, found := knownCommands[args[0]]; found {
		return cmd, true
	}
	return CommandServe, false
}
