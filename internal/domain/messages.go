package domain

import "errors"

// Mensajes visibles para el usuario. La app está en japonés.
var userMessages = map[ErrorKind]string{
	KindValidation:        "入力内容を確認してください。",
	KindConflict:          "このメールアドレスは既に登録されています。",
	KindAuth:              "メールアドレスまたはパスワードが正しくありません。",
	KindConfiguration:     "APIキーが設定されていません。環境変数 'API_KEY' を確認してください。",
	KindAuthConfiguration: "APIキーが無効です。正しいキーが設定されているか確認してください。",
	KindUpstream:          "AI提案の取得中にエラーが発生しました。",
	KindParse:             "AIからの応答をJSONとして解析できませんでした。",
	KindSchema:            "AIからの応答形式が正しくありません。",
}

const unknownErrorMessage = "予期せぬエラーが発生しました。"

// MsgLoginRequired es el mensaje de los errores auth por falta de sesión.
const MsgLoginRequired = "login required"

// UserMessage traduce err a un mensaje localizado.
// Los errores de validación ya traen su mensaje localizado; auth nunca dice qué campo falló.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *Error
	if !errors.As(err, &de) {
		return unknownErrorMessage
	}
	if de.Kind == KindValidation && de.Message != "" {
		return de.Message
	}
	if de.Kind == KindAuth && de.Message == MsgLoginRequired {
		return "ログインが必要です。"
	}
	if msg, ok := userMessages[de.Kind]; ok {
		return msg
	}
	return unknownErrorMessage
}
