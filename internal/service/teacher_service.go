package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/schoolops-api/internal/models"
	"github.com/noah-isme/schoolops-api/pkg/storage"
)

// TeacherService handles teacher records.
type TeacherService struct {
	uow       UnitOfWork
	images    imageReplacer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(uow UnitOfWork, images imageReplacer, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{uow: uow, images: images, validator: validate, logger: logger}
}

// List returns teachers with pagination metadata.
func (s *TeacherService) List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherDetail, *models.Pagination, error) {
	teachers, total, err := s.uow.Repos().Teachers.List(ctx, filter)
	if err != nil {
		return nil, nil, storageErr(err, "failed to list teachers")
	}
	return teachers, paginationOf(filter.Page, filter.PageSize, total), nil
}

// Get returns a teacher with address, account id and the courses it teaches.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.TeacherDetail, error) {
	repos := s.uow.Repos()
	teacher, err := repos.Teachers.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "teacher")
	}
	if teacher.Address, err = loadAddress(ctx, repos, teacher.AddressID); err != nil {
		return nil, err
	}
	courseIDs, err := repos.Courses.ListIDsByTeacher(ctx, id)
	if err != nil {
		return nil, storageErr(err, "failed to list teacher courses")
	}
	teacher.CourseIDs = courseIDs
	return teacher, nil
}

// Create stores a teacher and its optional address together.
func (s *TeacherService) Create(ctx context.Context, req models.CreateTeacherRequest) (*models.TeacherDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid teacher payload")
	}

	teacher := &models.Teacher{
		UserID:     req.UserID,
		Name:       req.Name,
		FatherName: req.FatherName,
		Email:      req.Email,
		Phone:      req.Phone,
		Salary:     req.Salary,
		JoinedOn:   req.JoinedOn,
	}
	var address *models.Address
	err := s.uow.WithinTx(ctx, func(r Repos) error {
		var err error
		if address, err = saveAddress(ctx, r, nil, req.Address); err != nil {
			return err
		}
		if address != nil {
			teacher.AddressID = &address.ID
		}
		return storageErr(r.Teachers.Create(ctx, teacher), "failed to create teacher")
	})
	if err != nil {
		return nil, storageErr(err, "failed to create teacher")
	}

	s.logger.Info("teacher created", zap.Int64("teacher_id", teacher.ID))
	return &models.TeacherDetail{Teacher: *teacher, Address: address, CourseIDs: []int64{}}, nil
}

// Update changes the given teacher fields. A supplied address overwrites the
// current one or is created when the teacher has none.
func (s *TeacherService) Update(ctx context.Context, id int64, req models.UpdateTeacherRequest) (*models.TeacherDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationErr(err, "invalid teacher payload")
	}

	err := s.uow.WithinTx(ctx, func(r Repos) error {
		teacher, err := r.Teachers.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "teacher")
		}
		if req.Name != nil {
			teacher.Name = *req.Name
		}
		if req.FatherName != nil {
			teacher.FatherName = *req.FatherName
		}
		if req.Email != nil {
			teacher.Email = *req.Email
		}
		if req.Phone != nil {
			teacher.Phone = *req.Phone
		}
		if req.Salary != nil {
			teacher.Salary = *req.Salary
		}
		if req.JoinedOn != nil {
			teacher.JoinedOn = req.JoinedOn
		}
		address, err := saveAddress(ctx, r, teacher.AddressID, req.Address)
		if err != nil {
			return err
		}
		if address != nil {
			teacher.AddressID = &address.ID
		}
		return storageErr(r.Teachers.Update(ctx, teacher), "failed to update teacher")
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("teacher updated", zap.Int64("teacher_id", id))
	return s.Get(ctx, id)
}

// ListCourses returns the courses currently assigned to the teacher.
func (s *TeacherService) ListCourses(ctx context.Context, id int64, filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error) {
	repos := s.uow.Repos()
	if _, err := repos.Teachers.FindByID(ctx, id); err != nil {
		return nil, nil, lookupErr(err, "teacher")
	}
	filter.TeacherID = id
	courses, total, err := repos.Courses.List(ctx, filter)
	if err != nil {
		return nil, nil, storageErr(err, "failed to list teacher courses")
	}
	return courses, paginationOf(filter.Page, filter.PageSize, total), nil
}

// UpdateImage replaces the profile image. The previous image is released after the change commits.
func (s *TeacherService) UpdateImage(ctx context.Context, id int64, data []byte) (*models.TeacherDetail, error) {
	if _, err := s.uow.Repos().Teachers.FindByID(ctx, id); err != nil {
		return nil, lookupErr(err, "teacher")
	}
	_, err := s.images.Replace(ctx, FolderTeachers, data, func(obj *storage.Object) (string, error) {
		var previous string
		err := s.uow.WithinTx(ctx, func(r Repos) error {
			teacher, err := r.Teachers.FindByIDForUpdate(ctx, id)
			if err != nil {
				return lookupErr(err, "teacher")
			}
			previous = teacher.ProfileImagePublicID
			return storageErr(r.Teachers.UpdateImage(ctx, id, obj.URL, obj.PublicID), "failed to update teacher image")
		})
		return previous, storageErr(err, "failed to update teacher image")
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}
