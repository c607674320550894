package docs

// @title AI聊天组件后端 API
// @version 1.0
// @description 嵌入式聊天组件的后端服务：转发访客消息到大模型，注入CMS内容和目标网站上下文，并提取推荐链接
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:10000
// @BasePath /
// @schemes http https
