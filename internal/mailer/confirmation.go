package mailer

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
)

// confirmationTemplate は受講登録確認メールの本文テンプレート。
var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<p>{{.StudentName}} 様</p>
<p>受講登録が完了しました。</p>
<ul>
  <li>プラン: {{.PlanTitle}}</li>
  <li>料金合計: {{.Price}}</li>
  <li>有効期限: {{.EndDate}}</li>
</ul>
<p>GymDesk</p>
`))

// ConfirmationInput は確認メール組み立ての入力。
type ConfirmationInput struct {
	StudentName  string
	StudentEmail string
	PlanTitle    string
	TotalPrice   float64
	EndDate      time.Time
}

// BuildConfirmation は受講登録確認メールを組み立てる。
// 宛先は "名前 <メールアドレス>" 形式、料金は小数点以下2桁、
// 有効期限は「YYYY年M月D日 23:59」の長形式で整形する。
func BuildConfirmation(input ConfirmationInput) (*Message, error) {
	data := struct {
		StudentName string
		PlanTitle   string
		Price       string
		EndDate     string
	}{
		StudentName: input.StudentName,
		PlanTitle:   input.PlanTitle,
		Price:       FormatPrice(input.TotalPrice),
		EndDate:     FormatEndDate(input.EndDate),
	}

	var body strings.Builder
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("確認メール本文の組み立てに失敗しました: %w", err)
	}

	return &Message{
		To:      fmt.Sprintf("%s <%s>", input.StudentName, input.StudentEmail),
		Subject: "【GymDesk】受講登録が完了しました",
		Body:    body.String(),
	}, nil
}

// FormatPrice は金額を小数点以下2桁の文字列に整形する（例: "300.00"）。
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

// FormatEndDate は有効期限を「YYYY年M月D日 HH:MM」の長形式に整形する。
func FormatEndDate(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日 %02d:%02d", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}
