package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/storage"
)

type imageReplacer interface {
	Replace(ctx context.Context, folder string, data []byte, swap func(*storage.Object) (string, error)) (*storage.Object, error)
}

// StudentService handles student registration and lookups.
type StudentService struct {
	uow       UnitOfWork
	images    imageReplacer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(uow UnitOfWork, images imageReplacer, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{uow: uow, images: images, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	students, total, err := s.uow.Repos().Students.List(ctx, filter)
	if err != nil {
		return nil, nil, storageErr(err, "failed to list students")
	}
	return students, paginationOf(filter.Page, filter.PageSize, total), nil
}

// Get returns a student with its account id, address and enrolled courses.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	repos := s.uow.Repos()
	student, err := repos.Students.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "student")
	}
	if student.Address, err = loadAddress(ctx, repos, student.AddressID); err != nil {
		return nil, err
	}
	courseIDs, err := repos.Students.ListCourseIDs(ctx, id)
	if err != nil {
		return nil, storageErr(err, "failed to list student courses")
	}
	student.CourseIDs = courseIDs
	return student, nil
}

// Create registers a student with its optional address.
// A missing registration number becomes one past the highest in use.
func (s *StudentService) Create(ctx context.Context, req models.CreateStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid student payload")
	}

	student := &models.Student{
		UserID:         req.UserID,
		RegistrationNo: req.RegistrationNo,
		Name:           req.Name,
		FatherName:     req.FatherName,
		Email:          req.Email,
		Phone:          req.Phone,
		Sex:            req.Sex,
		DOB:            req.DOB,
	}
	var address *models.Address
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		var err error
		if address, err = saveAddress(ctx, r, nil, req.Address); err != nil {
			return err
		}
		if address != nil {
			student.AddressID = &address.ID
		}
		if student.RegistrationNo == 0 {
			next, err := r.Students.NextRegistrationNo(ctx)
			if err != nil {
				return storageErr(err, "failed to allocate registration number")
			}
			student.RegistrationNo = next
		}
		return storageErr(r.Students.Create(ctx, student), "failed to create student")
	})
	if err != nil {
		return nil, storageErr(err, "failed to create student")
	}

	s.logger.Info("student created", zap.Int64("student_id", student.ID), zap.Int("registration_no", student.RegistrationNo))
	return &models.StudentDetail{Student: *student, Address: address, CourseIDs: []int64{}}, nil
}

// Update changes the given student fields. A supplied address overwrites the
// current one or is created when the student has none.
func (s *StudentService) Update(ctx context.Context, id int64, req models.UpdateStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid student payload")
	}

	err := s.uow.WithinTx(ctx, func(r Repos) error {
		student, err := r.Students.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "student")
		}
		if req.Name != nil {
			student.Name = *req.Name
		}
		if req.FatherName != nil {
			student.FatherName = *req.FatherName
		}
		if req.Email != nil {
			student.Email = *req.Email
		}
		if req.Phone != nil {
			student.Phone = *req.Phone
		}
		if req.Sex != nil {
			student.Sex = *req.Sex
		}
		if req.DOB != nil {
			student.DOB = req.DOB
		}
		address, err := saveAddress(ctx, r, student.AddressID, req.Address)
		if err != nil {
			return err
		}
		if address != nil {
			student.AddressID = &address.ID
		}
		return storageErr(r.Students.Update(ctx, student), "failed to update student")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("student updated", zap.Int64("student_id", id))
	return s.Get(ctx, id)
}

// UpdateImage replaces the profile image. The previous image is released after the change commits.
func (s *StudentService) UpdateImage(ctx context.Context, id int64, data []byte) (*models.StudentDetail, error) {
	if _, err := s.uow.Repos().Students.FindByID(ctx, id); err != nil {
		return nil, lookupErr(err, "student")
	}
	_, err := s.images.Replace(ctx, FolderStudents, data, func(obj *storage.Object) (string, error) {
		var previous string
		err := s.uow.WithinTx(ctx, func(r Repos) error {
			student, err := r.Students.FindByIDForUpdate(ctx, id)
			if err != nil {
				return lookupErr(err, "student")
			}
			previous = student.ProfileImagePublicID
			return storageErr(r.Students.UpdateImage(ctx, id, obj.URL, obj.PublicID), "failed to update student image")
		})
		return previous, storageErr(err, "failed to update student image")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
