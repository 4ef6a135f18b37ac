// Package response はサービスが返す統一レスポンス（エンベロープ）を提供します。
package response

import "net/http"

// Envelope はすべてのAPIレスポンスの外側の形です。
// Message はメッセージIDで、HTTP層で翻訳されます。
type Envelope struct {
	Message    string `json:"message"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
}

func newEnvelope(status int, message string, data any) Envelope {
	return Envelope{
		Message:    message,
		Success:    status >= http.StatusOK && status < http.StatusMultipleChoices,
		StatusCode: status,
		Data:       data,
	}
}

// payload は省略可能なデータ引数の先頭を返します。省略時はnilです。
func payload(data []any) any {
	if len(data) == 0 {
		return nil
	}
	return data[0]
}

func OK(message string, data any) Envelope {
	return newEnvelope(http.StatusOK, message, data)
}

// 失敗系のコンストラクタは追加情報を任意で1つ受け取ります。
func BadRequest(message string, data ...any) Envelope {
	return newEnvelope(http.StatusBadRequest, message, payload(data))
}

func NotFound(message string, data ...any) Envelope {
	return newEnvelope(http.StatusNotFound, message, payload(data))
}

func InternalError(message string, data ...any) Envelope {
	return newEnvelope(http.StatusInternalServerError, message, payload(data))
}

// Unauthorized と Forbidden は認証ミドルウェアからのみ使われます。
func Unauthorized(message string, data ...any) Envelope {
	return newEnvelope(http.StatusUnauthorized, message, payload(data))
}

func Forbidden(message string, data ...any) Envelope {
	return newEnvelope(http.StatusForbidden, message, payload(data))
}

// Status はHTTPステータスを返します。
func (e Envelope) Status() int {
	return e.StatusCode
}

// WithMessage はメッセージだけを差し替えたコピーを返します。
func (e Envelope) WithMessage(message string) Envelope {
	e.Message = message
	return e
}
