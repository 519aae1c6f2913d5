package dispatch

// Fixed user-facing replies. The transport only ever sees these strings;
// the underlying error goes to the log.
const (
	replyParseFailed		= "日付とタイトルの解析に失敗しました。"
	replyRegisterFailed		= "登録中にエラーが発生しました。"
	replyScheduleRegisterFailed	= "予定の登録中にエラーが発生しました。"
	replyScheduleListFailed		= "予定の確認中にエラーが発生しました。"
	replyDeleteFailed		= "削除中にエラーが発生しました。"
	replyUpdateFailed		= "更新中にエラーが発生しました。"
	replyDeleteTargetUnclear	= "削除対象の予定が正しく抽出できませんでした。予定名と時間を明記してください。"
	replyUpdateTargetUnclear	= "更新対象の予定が正しく抽出できませんでした。予定名と時間を明記してください。"
	replyTaskRegisterFailed		= "タスク登録中にエラーが発生しました。"
	replyTaskCompleteFailed		= "タスク完了中にエラーが発生しました。"
	replyTaskDeleteFailed		= "タスク削除中にエラーが発生しました。"
	replyTaskListFailed		= "タスクの一覧取得中にエラーが発生しました。"
	replyTaskCompletedListFailed	= "完了済みタスク一覧の取得中にエラーが発生しました。"
	replyTaskDueListFailed		= "期限付きタスク一覧の取得中にエラーが発生しました。"
	replyTaskTitleMissing		= "タスク名がうまく抽出できませんでした。"
	replyCompleteTitleMissing	= "完了させたいタスク名が見つかりませんでした。"
	replyDeleteTitleMissing		= "削除したいタスク名が見つかりませんでした。"
	replyChatFailed			= "AI応答中にエラーが発生しました。"
)

// chatSystemPrompt frames the conversational fallback for messages that
// match no actionable intent.
const chatSystemPrompt = "あなたは親切で柔軟なAIアシスタントです。"
