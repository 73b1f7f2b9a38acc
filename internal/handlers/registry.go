package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	CompanyHandler     *CompanyHandler
	JobHandler         *JobHandler
	FormFieldHandler   *FormFieldHandler
	ApplicationHandler *ApplicationHandler
	UserHandler        *UserHandler
	ActivityHandler    *ActivityHandler
	PublicHandler      *PublicHandler
}
