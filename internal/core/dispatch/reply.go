package dispatch

// Reply は 1 イベントに対する唯一の応答です。Menu が nil ならテキスト
// 応答、非 nil ならボタンテンプレート応答を表します。
type Reply struct {
	Text string
	Menu *Menu
}

// Menu はボタンテンプレートの内容です。
type Menu struct {
	Title   string
	Prompt  string
	Actions []MenuAction
}

// MenuAction はボタン 1 つ分のラベルとポストバックデータです。
type MenuAction struct {
	Label string
	Data  string
}
