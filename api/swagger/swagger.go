package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Acolhe API",
        "description": "Community services backend: clientes, atividades, inscricoes e avaliacoes",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Authentication gateway"},
        {"name": "Clientes", "description": "Community member registry"},
        {"name": "Responsaveis", "description": "Staff roster"},
        {"name": "Atividades", "description": "Activity catalog with seat capacity"},
        {"name": "Inscricoes", "description": "Enrollment ledger"},
        {"name": "Avaliacoes", "description": "Feedback inbox"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate staff or customer credentials",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/registrar-cliente": {
            "post": {
                "tags": ["Auth"],
                "summary": "Self-service cliente registration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterClienteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/auth/verificar-token": {
            "get": {
                "tags": ["Auth"],
                "summary": "Return the principal behind the bearer token",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid token"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/criar-admin": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create a staff account",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAdminRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/clientes": {
            "get": {
                "tags": ["Clientes"],
                "summary": "List clientes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "nome", "in": "query", "type": "string"},
                    {"name": "email", "in": "query", "type": "string"},
                    {"name": "cidade", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Clientes"],
                "summary": "Create cliente",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClienteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/clientes/{id}": {
            "get": {
                "tags": ["Clientes"],
                "summary": "Get cliente",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Clientes"],
                "summary": "Update cliente",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClienteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Clientes"],
                "summary": "Delete cliente",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Cliente has active inscricoes"}
                }
            }
        },
        "/clientes/cep/{cep}": {
            "get": {
                "tags": ["Clientes"],
                "summary": "Resolve a CEP to an address",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "cep", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "CEP not found"}
                }
            }
        },
        "/clientes/admin/estatisticas": {
            "get": {
                "tags": ["Clientes"],
                "summary": "Aggregate cliente statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/responsaveis": {
            "get": {
                "tags": ["Responsaveis"],
                "summary": "List responsaveis",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "nome", "in": "query", "type": "string"},
                    {"name": "email", "in": "query", "type": "string"},
                    {"name": "unidade", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Responsaveis"],
                "summary": "Create responsavel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateResponsavelRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Matricula or email already registered"}
                }
            }
        },
        "/responsaveis/{id}": {
            "get": {
                "tags": ["Responsaveis"],
                "summary": "Get responsavel with owned atividades",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Responsaveis"],
                "summary": "Update responsavel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateResponsavelRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Responsaveis"],
                "summary": "Delete responsavel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Responsavel owns active atividades"}
                }
            }
        },
        "/responsaveis/{id}/estatisticas": {
            "get": {
                "tags": ["Responsaveis"],
                "summary": "Atividade counts for one responsavel",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/atividades": {
            "get": {
                "tags": ["Atividades"],
                "summary": "List atividades",
                "parameters": [
                    {"name": "nome", "in": "query", "type": "string"},
                    {"name": "unidade", "in": "query", "type": "string"},
                    {"name": "categoria", "in": "query", "type": "string"},
                    {"name": "responsavelId", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Atividades"],
                "summary": "Create atividade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAtividadeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unknown responsavel"}
                }
            }
        },
        "/atividades/{id}": {
            "get": {
                "tags": ["Atividades"],
                "summary": "Get atividade with resolved responsavel",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Atividades"],
                "summary": "Update atividade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateAtividadeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Capacity below occupied seats"}
                }
            },
            "delete": {
                "tags": ["Atividades"],
                "summary": "Delete atividade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Atividade has confirmed inscricoes"}
                }
            }
        },
        "/atividades/admin/estatisticas": {
            "get": {
                "tags": ["Atividades"],
                "summary": "Aggregate atividade statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscricoes": {
            "get": {
                "tags": ["Inscricoes"],
                "summary": "List inscricoes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "clienteId", "in": "query", "type": "string"},
                    {"name": "atividadeId", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Inscricoes"],
                "summary": "Enroll a cliente in an atividade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateInscricaoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No seats available"}
                }
            }
        },
        "/inscricoes/{id}": {
            "get": {
                "tags": ["Inscricoes"],
                "summary": "Get inscricao with both parents resolved",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscricoes/{id}/confirmar": {
            "put": {
                "tags": ["Inscricoes"],
                "summary": "Confirm a pending inscricao",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Inscricao is not pending"}
                }
            }
        },
        "/inscricoes/{id}/cancelar": {
            "put": {
                "tags": ["Inscricoes"],
                "summary": "Cancel an inscricao and release its seat",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/CancelInscricaoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Inscricao already cancelled"}
                }
            }
        },
        "/inscricoes/cliente/{idCliente}": {
            "get": {
                "tags": ["Inscricoes"],
                "summary": "List inscricoes for one cliente",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "idCliente", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscricoes/atividade/{idAtividade}": {
            "get": {
                "tags": ["Inscricoes"],
                "summary": "List inscricoes for one atividade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "idAtividade", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscricoes/admin/estatisticas": {
            "get": {
                "tags": ["Inscricoes"],
                "summary": "Aggregate inscricao statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/inscricoes/admin/exportar": {
            "get": {
                "tags": ["Inscricoes"],
                "summary": "Export the enrollment ledger",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "formato", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/avaliacoes": {
            "get": {
                "tags": ["Avaliacoes"],
                "summary": "List avaliacoes",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "tipo", "in": "query", "type": "string"},
                    {"name": "categoria", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "prioridade", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Avaliacoes"],
                "summary": "Submit feedback",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAvaliacaoRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/avaliacoes/{id}": {
            "get": {
                "tags": ["Avaliacoes"],
                "summary": "Get avaliacao",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/avaliacoes/{id}/responder": {
            "put": {
                "tags": ["Avaliacoes"],
                "summary": "Answer an avaliacao",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RespondAvaliacaoRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Avaliacao already answered"}
                }
            }
        },
        "/avaliacoes/admin/pendentes": {
            "get": {
                "tags": ["Avaliacoes"],
                "summary": "List avaliacoes awaiting a response",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "prioridade", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/avaliacoes/admin/estatisticas": {
            "get": {
                "tags": ["Avaliacoes"],
                "summary": "Aggregate avaliacao statistics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "senha": {"type": "string"}
            },
            "required": ["email", "senha"]
        },
        "RegisterClienteRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "senha": {"type": "string"},
                "telefone": {"type": "string"},
                "dataNascimento": {"type": "string"},
                "cep": {"type": "string"}
            },
            "required": ["nome", "email", "senha"]
        },
        "CreateAdminRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "senha": {"type": "string"},
                "permissoes": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["nome", "email", "senha"]
        },
        "CreateClienteRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "dataNascimento": {"type": "string"},
                "telefone": {"type": "string"},
                "cep": {"type": "string"}
            },
            "required": ["nome", "email"]
        },
        "UpdateClienteRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "email": {"type": "string"},
                "dataNascimento": {"type": "string"},
                "telefone": {"type": "string"},
                "cep": {"type": "string"},
                "status": {"type": "string", "enum": ["ativo", "inativo"]}
            },
            "required": ["nome", "email"]
        },
        "CreateResponsavelRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "matricula": {"type": "string"},
                "email": {"type": "string"},
                "unidade": {"type": "string"},
                "telefone": {"type": "string"}
            },
            "required": ["nome", "matricula", "email"]
        },
        "UpdateResponsavelRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "matricula": {"type": "string"},
                "email": {"type": "string"},
                "unidade": {"type": "string"},
                "telefone": {"type": "string"},
                "status": {"type": "string", "enum": ["ativo", "inativo"]}
            },
            "required": ["nome", "matricula", "email"]
        },
        "CreateAtividadeRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "descricao": {"type": "string"},
                "unidade": {"type": "string"},
                "categoria": {"type": "string"},
                "responsavelId": {"type": "string"},
                "vagasTotal": {"type": "integer"}
            },
            "required": ["nome", "responsavelId", "vagasTotal"]
        },
        "UpdateAtividadeRequest": {
            "type": "object",
            "properties": {
                "nome": {"type": "string"},
                "descricao": {"type": "string"},
                "unidade": {"type": "string"},
                "categoria": {"type": "string"},
                "responsavelId": {"type": "string"},
                "vagasTotal": {"type": "integer"},
                "status": {"type": "string", "enum": ["ativa", "inativa"]}
            },
            "required": ["nome", "responsavelId", "vagasTotal"]
        },
        "CreateInscricaoRequest": {
            "type": "object",
            "properties": {
                "clienteId": {"type": "string"},
                "atividadeId": {"type": "string"}
            },
            "required": ["clienteId", "atividadeId"]
        },
        "CancelInscricaoRequest": {
            "type": "object",
            "properties": {
                "motivo": {"type": "string"}
            }
        },
        "CreateAvaliacaoRequest": {
            "type": "object",
            "properties": {
                "tipo": {"type": "string", "enum": ["elogio", "critica", "sugestao"]},
                "titulo": {"type": "string"},
                "descricao": {"type": "string"},
                "categoria": {"type": "string"}
            },
            "required": ["tipo", "titulo", "descricao"]
        },
        "RespondAvaliacaoRequest": {
            "type": "object",
            "properties": {
                "resposta": {"type": "string"}
            },
            "required": ["resposta"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "limit": {"type": "integer"},
                "total": {"type": "integer"},
                "totalPages": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
