package ui

import (
	"fmt"
	"io"
	"os"
)

// PrintWelcome выводит приветствие и лого
func PrintWelcome(w io.Writer) {
	logoBytes, err := os.ReadFile("logo.txt")
	if err == nil {
		fmt.Fprintln(w, ColorCyan+string(logoBytes)+ColorReset)
	}
	fmt.Fprintln(w, ColorBold+IconLoop+" hhResponder v0.1.0"+ColorReset)
	fmt.Fprintln(w, ColorGray+"Автоматические отклики на вакансии hh.ru"+ColorReset)
	fmt.Fprintln(w, ColorGray+"Используется: Firefox + Playwright"+ColorReset)
	fmt.Fprintln(w)
	PrintHelp(w)
	fmt.Fprintln(w, ColorCyan+IconBulb+" Совет:"+ColorReset+" Используйте "+ColorYellow+"open hh.ru"+ColorReset+" для входа, затем откройте поиск и "+ColorYellow+"start"+ColorReset)
	fmt.Fprintln(w)
	fmt.Fprintln(w, ColorGray+"⬆️ ⬇️"+ColorReset+" Используйте стрелки для навигации по истории команд")
	fmt.Fprintln(w)
}

// PrintHelp выводит список доступных команд
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, ColorYellow+IconList+" Доступные команды:"+ColorReset)
	fmt.Fprintln(w, "  "+ColorGreen+"start"+ColorReset+"               - Запустить или остановить отклики")
	fmt.Fprintln(w, "  "+ColorGreen+"stop"+ColorReset+"                - Остановить отклики")
	fmt.Fprintln(w, "  "+ColorGreen+"status"+ColorReset+"              - Текущее состояние")
	fmt.Fprintln(w, "  "+ColorGreen+"templates"+ColorReset+"           - Список шаблонов писем")
	fmt.Fprintln(w, "  "+ColorGreen+"use"+ColorReset+" <n>             - Выбрать шаблон")
	fmt.Fprintln(w, "  "+ColorGreen+"edit"+ColorReset+" <n>            - Изменить шаблон (ввод заканчивается строкой \".\")")
	fmt.Fprintln(w, "  "+ColorGreen+"preview"+ColorReset+" <n>         - Предпросмотр шаблона")
	fmt.Fprintln(w, "  "+ColorGreen+"open"+ColorReset+" <url>          - Открыть URL в браузере")
	fmt.Fprintln(w, "  "+ColorGreen+"applications"+ColorReset+" [n]    - Последние отклики")
	fmt.Fprintln(w, "  "+ColorGreen+"stats"+ColorReset+"               - Статистика откликов")
	fmt.Fprintln(w, "  "+ColorGreen+"clear"+ColorReset+"               - Очистить экран")
	fmt.Fprintln(w, "  "+ColorGreen+"exit"+ColorReset+"                - Выход")
	fmt.Fprintln(w)
}
