// Package docs holds the Swagger document served at /api/swagger. Keep it in
// step with the handler annotations in internal/server.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@socialfeed.dev"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/comments/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Only the comment's author may delete it.",
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Delete comment",
                "parameters": [
                    {"type": "integer", "description": "Comment ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.DeleteResult"}}
                }
            }
        },
        "/posts": {
            "get": {
                "description": "Newest-first page of posts with their authors",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List posts",
                "parameters": [
                    {"type": "integer", "description": "Page size (default 10; no upper bound unless PAGINATION_MAX_LIMIT is set)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create post",
                "parameters": [
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CreatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.PostResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}": {
            "get": {
                "description": "Post with comments, likes and shares; null when absent",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Get post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Post"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Only the author may delete. Comments, likes and shares go with it.",
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.DeleteResult"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Only the author may update. Empty content is ignored; empty image_url clears the image.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Update post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Changes", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.UpdatePostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.PostResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List comments",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Add comment",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CreateCommentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.CommentResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Likes the post, or removes the caller's like when one exists. like is null after an unlike.",
                "produces": ["application/json"],
                "tags": ["engagement"],
                "summary": "Like or unlike a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.LikeResult"}}
                }
            }
        },
        "/posts/{id}/likes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["engagement"],
                "summary": "List likes",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Like"}}}
                }
            }
        },
        "/posts/{id}/shares": {
            "get": {
                "description": "Shares of a post, newest first. A post may be shared by the same user more than once.",
                "produces": ["application/json"],
                "tags": ["engagement"],
                "summary": "List shares",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Share"}}}
                }
            }
        },
        "/posts/{id}/share": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["engagement"],
                "summary": "Share a post",
                "parameters": [
                    {"type": "integer", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ShareResult"}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.User"}}}
                }
            }
        },
        "/users/by-username/{username}": {
            "get": {
                "description": "Returns null when no user has the username.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Look up a user by username",
                "parameters": [
                    {"type": "string", "description": "Username", "name": "username", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}}
                }
            }
        },
        "/users/{id}/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List a user's posts",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Post"}}}
                }
            }
        }
    },
    "definitions": {
        "models.Comment": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "post_id": {"type": "integer"},
                "author_id": {"type": "integer"},
                "author": {"$ref": "#/definitions/models.User"},
                "content": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "models.Like": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "post_id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "user": {"$ref": "#/definitions/models.User"},
                "created_at": {"type": "string"}
            }
        },
        "models.Post": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "author_id": {"type": "integer"},
                "author": {"$ref": "#/definitions/models.User"},
                "content": {"type": "string"},
                "image_url": {"type": "string"},
                "likes_count": {"type": "integer"},
                "comments_count": {"type": "integer"},
                "shares_count": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}},
                "likes": {"type": "array", "items": {"$ref": "#/definitions/models.Like"}},
                "shares": {"type": "array", "items": {"$ref": "#/definitions/models.Share"}}
            }
        },
        "models.Share": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "post_id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "user": {"$ref": "#/definitions/models.User"},
                "created_at": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "server.CommentResult": {
            "type": "object",
            "properties": {
                "comment": {"$ref": "#/definitions/models.Comment"},
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "server.CreateCommentRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"}
            }
        },
        "server.CreatePostRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "server.DeleteResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "server.LikeResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "like": {"$ref": "#/definitions/models.Like"}
            }
        },
        "server.PostResult": {
            "type": "object",
            "properties": {
                "post": {"$ref": "#/definitions/models.Post"},
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "server.ShareResult": {
            "type": "object",
            "properties": {
                "share": {"$ref": "#/definitions/models.Share"},
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "server.UpdatePostRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "image_url": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8375",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Social Feed API",
	Description:      "Social content backend with posts, comments, likes and shares",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
