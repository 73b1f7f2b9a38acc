package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager хранит распарсенные шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}

	// Встроенные шаблоны; внешняя директория не обязательна
	_ = tm.AddTemplate("application_received", applicationReceivedTemplate)
	_ = tm.AddTemplate("application_status_changed", applicationStatusTemplate)

	return tm
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

const applicationReceivedTemplate = `
<html>
<body>
  <h2>Спасибо за отклик, {{.CandidateName}}!</h2>
  <p>Мы получили вашу заявку на вакансию <b>{{.JobTitle}}</b> в компании {{.CompanyName}}.</p>
  <p>Рекрутер свяжется с вами после рассмотрения.</p>
</body>
</html>`

const applicationStatusTemplate = `
<html>
<body>
  <h2>Обновление по вашему отклику</h2>
  <p>Статус вашей заявки на вакансию <b>{{.JobTitle}}</b> изменен: {{.Status}}.</p>
  <p>{{.CompanyName}}</p>
</body>
</html>`
