package response

// メッセージID。pkg/translator/translation/*.toml のキーと一致させること。
const (
	MsgTaskCreated          = "taskCreated"
	MsgTaskRetrieved        = "taskRetrieved"
	MsgTasksRetrieved       = "tasksRetrieved"
	MsgTaskUpdated          = "taskUpdated"
	MsgTaskDeleted          = "taskDeleted"
	MsgTaskStatusUpdated    = "taskStatusUpdated"
	MsgTaskNotFound         = "taskNotFound"
	MsgTitleRequired        = "titleRequired"
	MsgCategoryDoesNotExist = "categoryDoesNotExist"
	MsgFailCreateTask       = "failCreateTask"
	MsgFailGetTask          = "failGetTask"
	MsgFailGetTasks         = "failGetTasks"
	MsgFailUpdateTask       = "failUpdateTask"
	MsgFailDeleteTask       = "failDeleteTask"
	MsgFailToggleTask       = "failToggleTask"

	MsgCategoryCreated     = "categoryCreated"
	MsgCategoryRetrieved   = "categoryRetrieved"
	MsgCategoriesRetrieved = "categoriesRetrieved"
	MsgCategoryUpdated     = "categoryUpdated"
	MsgCategoryDeleted     = "categoryDeleted"
	MsgCategoryNotFound    = "categoryNotFound"
	MsgCategoryNameTaken   = "categoryNameTaken"
	MsgCategoryNameBlank   = "categoryNameRequired"
	MsgFailCreateCategory  = "failCreateCategory"
	MsgFailGetCategory     = "failGetCategory"
	MsgFailGetCategories   = "failGetCategories"
	MsgFailUpdateCategory  = "failUpdateCategory"
	MsgFailDeleteCategory  = "failDeleteCategory"

	MsgUserRegistered     = "userRegistered"
	MsgLoginSuccessful    = "loginSuccessful"
	MsgUserRetrieved      = "userRetrieved"
	MsgUsersRetrieved     = "usersRetrieved"
	MsgUserNotFound       = "userNotFound"
	MsgEmailTaken         = "emailTaken"
	MsgUsernameTaken      = "usernameTaken"
	MsgInvalidRole        = "invalidRole"
	MsgPasswordTooLong    = "passwordTooLong"
	MsgInvalidCredentials = "invalidCredentials"
	MsgFailRegisterUser   = "failRegisterUser"
	MsgFailLogin          = "failLogin"
	MsgFailGetUser        = "failGetUser"
	MsgFailGetUsers       = "failGetUsers"

	MsgInvalidPayload     = "invalidPayload"
	MsgInvalidID          = "invalidId"
	MsgInvalidQuery       = "invalidQuery"
	MsgAuthHeaderRequired = "authHeaderRequired"
	MsgInvalidTokenFormat = "invalidTokenFormat"
	MsgInvalidToken       = "invalidToken"
	MsgForbidden          = "forbidden"
	MsgInternalError      = "internalError"
)
