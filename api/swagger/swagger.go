package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SchoolOps API",
        "description": "Accounts ledger, enrollment, course administration and the public notice board of a school.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [
        {"name": "Accounts", "description": "Balances, ledger entries and statements"},
        {"name": "Students", "description": "Student registration and enrollment"},
        {"name": "Teachers", "description": "Teacher records"},
        {"name": "Courses", "description": "Courses and teacher assignment"},
        {"name": "Attendance", "description": "Per-course attendance"},
        {"name": "Classroom", "description": "Classwork, submissions and grading"},
        {"name": "Me", "description": "The caller's own records"},
        {"name": "Notices", "description": "School notice board"},
        {"name": "Gallery", "description": "Picture gallery"},
        {"name": "Enquiries", "description": "Visitor enquiries"},
        {"name": "Public", "description": "Unauthenticated public site"}
    ],
    "paths": {
        "/accounts": {
            "get": {
                "tags": ["Accounts"],
                "summary": "List accounts",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "search", "in": "query", "type": "string", "description": "search"},
                    {"name": "ownerType", "in": "query", "type": "string", "description": "ownerType"},
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            }
        },
        "/accounts/{id}": {
            "get": {
                "tags": ["Accounts"],
                "summary": "Get account with its transactions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/accounts/{id}/transactions": {
            "get": {
                "tags": ["Accounts"],
                "summary": "List account transactions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "post": {
                "tags": ["Accounts"],
                "summary": "Apply a transaction",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyTransactionRequest"}}
                ]
            }
        },
        "/accounts/{id}/reconcile": {
            "get": {
                "tags": ["Accounts"],
                "summary": "Compare stored balance with replayed history",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/accounts/{id}/statement": {
            "get": {
                "tags": ["Accounts"],
                "summary": "Download the account statement",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "pdf"}
                ],
                "produces": ["application/pdf", "text/csv"]
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "search", "in": "query", "type": "string", "description": "search"},
                    {"name": "courseId", "in": "query", "type": "integer", "description": "courseId"},
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}]
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student with enrollments, account and history",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "patch": {
                "tags": ["Students"],
                "summary": "Update student details",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ]
            }
        },
        "/students/{id}/image": {
            "put": {
                "tags": ["Students"],
                "summary": "Replace the student profile image",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "image", "in": "formData", "type": "file", "required": true}
                ],
                "consumes": ["multipart/form-data"]
            }
        },
        "/students/{id}/courses/{courseId}": {
            "post": {
                "tags": ["Students"],
                "summary": "Enroll student in a course and charge its fees",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "courseId"}
                ]
            }
        },
        "/students/{id}/courses/{courseId}/attendance": {
            "get": {
                "tags": ["Students"],
                "summary": "Attendance records listing the student as present",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "courseId", "in": "path", "required": true, "type": "integer", "description": "courseId"}
                ]
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "search", "in": "query", "type": "string", "description": "search"},
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Create teacher",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTeacherRequest"}}]
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete teacher and account, unassigning their courses",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "patch": {
                "tags": ["Teachers"],
                "summary": "Update teacher details",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTeacherRequest"}}
                ]
            }
        },
        "/teachers/{id}/image": {
            "put": {
                "tags": ["Teachers"],
                "summary": "Replace the teacher profile image",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "image", "in": "formData", "type": "file", "required": true}
                ],
                "consumes": ["multipart/form-data"]
            }
        },
        "/teachers/{id}/courses": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Courses taught by the teacher",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "search", "in": "query", "type": "string", "description": "search"},
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course and its classroom",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}]
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "patch": {
                "tags": ["Courses"],
                "summary": "Update course details",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCourseRequest"}}
                ]
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course with its classroom, attendance and enrollments",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/courses/{id}/image": {
            "put": {
                "tags": ["Courses"],
                "summary": "Replace the course image",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "image", "in": "formData", "type": "file", "required": true}
                ],
                "consumes": ["multipart/form-data"]
            }
        },
        "/courses/{id}/teacher/{teacherId}": {
            "put": {
                "tags": ["Courses"],
                "summary": "Assign a teacher to the course",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "teacherId", "in": "path", "required": true, "type": "integer", "description": "teacherId"}
                ]
            }
        },
        "/courses/{id}/students": {
            "get": {
                "tags": ["Courses"],
                "summary": "Students enrolled in the course",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/courses/{id}/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Attendance history of the course",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "post": {
                "tags": ["Attendance"],
                "summary": "Record who was present on a date",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAttendanceRequest"}}
                ]
            }
        },
        "/courses/{id}/classwork": {
            "get": {
                "tags": ["Classroom"],
                "summary": "Classwork posted to the course classroom",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "post": {
                "tags": ["Classroom"],
                "summary": "Post classwork",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "title", "in": "formData", "type": "string", "required": true},
                    {"name": "description", "in": "formData", "type": "string", "required": false},
                    {"name": "total_marks", "in": "formData", "type": "integer", "required": false},
                    {"name": "last_date", "in": "formData", "type": "string", "required": false},
                    {"name": "reference", "in": "formData", "type": "file", "required": false}
                ],
                "consumes": ["multipart/form-data"]
            }
        },
        "/classwork/{id}": {
            "delete": {
                "tags": ["Classroom"],
                "summary": "Delete a classwork with its submissions",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/classwork/{id}/works": {
            "get": {
                "tags": ["Classroom"],
                "summary": "Submissions for a classwork",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            },
            "post": {
                "tags": ["Classroom"],
                "summary": "Submit work",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitWorkRequest"}}
                ]
            }
        },
        "/works/{id}/marks": {
            "put": {
                "tags": ["Classroom"],
                "summary": "Set the marks of a submission",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GradeWorkRequest"}}
                ]
            }
        },
        "/me": {
            "get": {
                "tags": ["Me"],
                "summary": "The caller with its student or teacher record",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/me/account": {
            "get": {
                "tags": ["Me"],
                "summary": "The caller's fee or salary account with its history",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notices": {
            "get": {
                "tags": ["Notices"],
                "summary": "List notices, newest first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            },
            "post": {
                "tags": ["Notices"],
                "summary": "Publish a notice",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "title", "in": "formData", "required": true, "type": "string", "description": "title"},
                    {"name": "description", "in": "formData", "required": false, "type": "string", "description": "description"},
                    {"name": "image", "in": "formData", "required": false, "type": "file", "description": "image"}
                ]
            }
        },
        "/notices/{id}": {
            "delete": {
                "tags": ["Notices"],
                "summary": "Delete a notice",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/gallery": {
            "get": {
                "tags": ["Gallery"],
                "summary": "List gallery pictures",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            },
            "post": {
                "tags": ["Gallery"],
                "summary": "Add a picture to the gallery",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "about", "in": "formData", "required": false, "type": "string", "description": "about"},
                    {"name": "taken_on", "in": "formData", "required": false, "type": "string", "description": "taken_on"},
                    {"name": "image", "in": "formData", "required": true, "type": "file", "description": "image"}
                ]
            }
        },
        "/gallery/{id}": {
            "delete": {
                "tags": ["Gallery"],
                "summary": "Remove a gallery picture",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/enquiries": {
            "get": {
                "tags": ["Enquiries"],
                "summary": "List enquiries",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "description": "status"},
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            }
        },
        "/enquiries/{id}/status": {
            "put": {
                "tags": ["Enquiries"],
                "summary": "Mark an enquiry as responded",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/enquiries/{id}": {
            "delete": {
                "tags": ["Enquiries"],
                "summary": "Delete an enquiry",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer", "description": "id"}]
            }
        },
        "/public/gallery": {
            "get": {
                "tags": ["Public"],
                "summary": "List gallery pictures",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            }
        },
        "/public/courses": {
            "get": {
                "tags": ["Public"],
                "summary": "List courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [
                    {"name": "search", "in": "query", "type": "string", "description": "search"},
                    {"name": "page", "in": "query", "type": "integer", "description": "page"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "limit"}
                ]
            }
        },
        "/public/enquiries": {
            "post": {
                "tags": ["Public"],
                "summary": "Leave an enquiry",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "default": {"description": "Error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                },
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEnquiryRequest"}}]
            }
        }
    },
    "definitions": {
        "ApplyTransactionRequest": {
            "type": "object",
            "required": ["type", "amount"],
            "properties": {
                "type": {"type": "string", "example": "DEBIT"},
                "amount": {"type": "number"},
                "mode": {"type": "string"},
                "remarks": {"type": "string"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "father_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female", "other"]},
                "dob": {"type": "string", "format": "date-time"},
                "registration_no": {"type": "integer"},
                "user_id": {"type": "integer"}
            }
        },
        "AddressRequest": {
            "type": "object",
            "required": ["city", "street"],
            "properties": {"city": {"type": "string"}, "street": {"type": "string"}}
        },
        "CreateTeacherRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "father_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "salary": {"type": "integer"},
                "joined_on": {"type": "string", "format": "date-time"},
                "user_id": {"type": "integer"},
                "address": {"$ref": "#/definitions/AddressRequest"}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["name", "fees"],
            "properties": {
                "name": {"type": "string"},
                "session": {"type": "string"},
                "duration": {"type": "string"},
                "about": {"type": "string"},
                "fees": {"type": "string", "example": "500"},
                "class_time": {"type": "string"}
            }
        },
        "UpdateCourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "session": {"type": "string"},
                "duration": {"type": "string"},
                "about": {"type": "string"},
                "fees": {"type": "string"},
                "class_time": {"type": "string"}
            }
        },
        "MarkAttendanceRequest": {
            "type": "object",
            "required": ["teacher_id"],
            "properties": {
                "teacher_id": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "student_ids": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "SubmitWorkRequest": {
            "type": "object",
            "required": ["content"],
            "properties": {"content": {"type": "string"}}
        },
        "GradeWorkRequest": {
            "type": "object",
            "required": ["marks"],
            "properties": {"marks": {"type": "number"}}
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "father_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "sex": {"type": "string", "enum": ["male", "female", "other"]},
                "dob": {"type": "string", "format": "date-time"},
                "address": {"$ref": "#/definitions/AddressRequest"}
            }
        },
        "UpdateTeacherRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "father_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "salary": {"type": "integer"},
                "joined_on": {"type": "string", "format": "date-time"},
                "address": {"$ref": "#/definitions/AddressRequest"}
            }
        },
        "CreateEnquiryRequest": {
            "type": "object",
            "required": ["name", "email", "subject"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "mobile": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total_count": {"type": "integer"}}
        },
        "APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
