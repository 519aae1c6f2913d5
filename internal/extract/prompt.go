package extract

import "fmt"

func eventPromptWithTime(today string) string {
	return fmt.Sprintf(
		"あなたは自然文から予定の日時とタイトルを抽出するアシスタントです。\n"+
			"今日の日付は %s です。『明日』『明後日』なども正しく認識してください。\n"+
			"絶対に自然文では返さず、以下の形式のJSONだけを返してください：\n"+
			"{\"title\": \"予定名\", \"start_time\": \"2025-04-30 15:00:00\"}\n"+
			"※形式が正しくないと処理ができません。",
		today,
	)
}

func eventPromptTitleOnly(today string) string {
	return fmt.Sprintf(
		"あなたは自然文から予定のタイトルだけを抽出するアシスタントです。\n"+
			"今日の日付は %s です。『明日』『明後日』なども正しく認識してください。\n"+
			"絶対に自然文では返さず、以下の形式のJSONだけを返してください：\n"+
			"{\"title\": \"予定名\"}\n"+
			"※形式が正しくないと処理ができません。",
		today,
	)
}

func taskTitlePrompt(today string) string {
	return fmt.Sprintf(
		"あなたは自然文からタスク名を抽出するアシスタントです。\n"+
			"今日の日付は %s です。『明日までにやること』などの文脈を正しく判断してください。\n"+
			"絶対に自然文では返さず、以下の形式のJSONだけを返してください：\n"+
			"{\"title\": \"タスク名\"}\n"+
			"※形式が正しくないと処理ができません。",
		today,
	)
}

func taskDetailsPrompt(today string) string {
	return fmt.Sprintf(
		"あなたは自然文からタスク名と期限日を抽出するアシスタントです。\n"+
			"今日の日付は %s です。『明日までに』などの文脈も正しく解釈してください。\n"+
			"絶対に自然文では返さず、以下の形式のJSONだけを返してください：\n"+
			"{\"title\": \"タスク名\", \"due\": \"2025-05-10T00:00:00.000Z\"}\n"+
			"期限がない場合は \"due\": null を設定してください。\n"+
			"※形式が正しくないと処理ができません。",
		today,
	)
}
