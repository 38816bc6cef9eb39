package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/lcodev/ecom_backend/internal/apperrors"
	"github.com/lcodev/ecom_backend/internal/core/domain"
	portsrepo "github.com/lcodev/ecom_backend/internal/core/ports/repositories"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/core/services"
	"github.com/lcodev/ecom_backend/internal/dto"
	"github.com/lcodev/ecom_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	mockSessions *MockSessionRepository
	service      portssvc.UserSvcFacade
	customer     *domain.User
	staff        *domain.User
	superuser    *domain.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockSessions = new(MockSessionRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockSessions, utils.BcryptHasher{Cost: bcrypt.MinCost}, nil)
	suite.customer = &domain.User{UserID: "u1", Email: "a@b.co", IsActive: true}
	suite.staff = &domain.User{UserID: "s1", Email: "s@b.co", IsActive: true, IsStaff: true}
	suite.superuser = &domain.User{UserID: "root", Email: "r@b.co", IsActive: true, IsSuperuser: true}
}

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "a@b.co" &&
			user.Name == domain.DefaultUserName &&
			user.IsActive && !user.IsStaff &&
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("xyz")) == nil
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.co", Password: "xyz"})

	suite.Require().NoError(err)
	suite.NotEmpty(created.UserID)
	suite.Empty(created.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_ValidationAndDuplicate() {
	ctx := context.Background()

	_, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Email: "bad", Password: "xyz"})
	suite.ErrorIs(err, apperrors.ErrMalformedEmail)

	_, err = suite.service.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.co", Password: "xy"})
	suite.ErrorIs(err, apperrors.ErrPasswordTooShort)

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrDuplicate).Once()
	_, err = suite.service.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.co", Password: "xyz"})
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *UserServiceTestSuite) TestGetUser_Ownership() {
	ctx := context.Background()
	other := &domain.User{UserID: "u2", Email: "o@b.co", IsActive: true, PasswordHash: "hash"}
	suite.mockUserRepo.On("FindUserByID", ctx, "u2").Return(other, nil)

	_, err := suite.service.GetUser(ctx, suite.customer, "u2")
	suite.ErrorIs(err, apperrors.ErrForbidden)

	got, err := suite.service.GetUser(ctx, suite.staff, "u2")
	suite.Require().NoError(err)
	suite.Empty(got.PasswordHash)

	_, err = suite.service.GetUser(ctx, nil, "u2")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestListUsers_RequiresStaff() {
	ctx := context.Background()
	_, err := suite.service.ListUsers(ctx, suite.customer, 10, 0)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockUserRepo.On("ListUsers", ctx, 10, 0).Return([]domain.User{*suite.customer}, nil).Once()
	users, err := suite.service.ListUsers(ctx, suite.superuser, 10, 0)
	suite.Require().NoError(err)
	suite.Len(users, 1)
}

func (suite *UserServiceTestSuite) TestUpdateUser_ChangesPassword() {
	ctx := context.Background()
	stored := *suite.customer
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(&stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Name == "Ada" &&
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass")) == nil
	})).Return(nil).Once()
	suite.mockSessions.On("UpdateSession", ctx, "u1", mock.Anything).Return(nil, nil).Once()

	name, password := "Ada", "newpass"
	updated, err := suite.service.UpdateUser(ctx, suite.customer, "u1", dto.UpdateUserRequest{Name: &name, Password: &password})

	suite.Require().NoError(err)
	suite.Equal("Ada", updated.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockSessions.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_PasswordChangeClearsSession() {
	ctx := context.Background()
	stored := *suite.customer
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(&stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.Anything).Return(nil).Once()

	var cleared *domain.Session
	suite.mockSessions.On("UpdateSession", ctx, "u1", mock.MatchedBy(func(fn portsrepo.SessionMutator) bool {
		active := domain.Session{UserID: "u1"}
		active.Activate("abcdefghij", time.Hour, time.Now())
		cleared, _ = fn(active)
		return true
	})).Return(nil, nil).Once()

	password := "newpass"
	_, err := suite.service.UpdateUser(ctx, suite.customer, "u1", dto.UpdateUserRequest{Password: &password})

	suite.Require().NoError(err)
	suite.Require().NotNil(cleared)
	suite.False(cleared.IsActive(time.Now()))
	suite.False(cleared.Matches("abcdefghij", time.Now()))
}

func (suite *UserServiceTestSuite) TestUpdateUser_ProfileEditKeepsSession() {
	ctx := context.Background()
	stored := *suite.customer
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(&stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.Anything).Return(nil).Once()

	name := "Ada"
	_, err := suite.service.UpdateUser(ctx, suite.customer, "u1", dto.UpdateUserRequest{Name: &name})

	suite.Require().NoError(err)
	suite.mockSessions.AssertNotCalled(suite.T(), "UpdateSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_StaffCannotChangeOthersPassword() {
	ctx := context.Background()
	stored := *suite.customer
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(&stored, nil).Once()

	password := "takeover"
	_, err := suite.service.UpdateUser(ctx, suite.staff, "u1", dto.UpdateUserRequest{Password: &password})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
	suite.mockSessions.AssertNotCalled(suite.T(), "UpdateSession", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_StaffCannotEditSuperuser() {
	ctx := context.Background()
	root := *suite.superuser
	suite.mockUserRepo.On("FindUserByID", ctx, "root").Return(&root, nil).Twice()

	name := "Mallory"
	_, err := suite.service.UpdateUser(ctx, suite.staff, "root", dto.UpdateUserRequest{Name: &name})
	suite.ErrorIs(err, apperrors.ErrForbidden)

	password := "takeover"
	_, err = suite.service.UpdateUser(ctx, suite.staff, "root", dto.UpdateUserRequest{Password: &password})
	suite.ErrorIs(err, apperrors.ErrForbidden)

	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_StaffEditsCustomerProfile() {
	ctx := context.Background()
	stored := *suite.customer
	suite.mockUserRepo.On("FindUserByID", ctx, "u1").Return(&stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Phone == "555"
	})).Return(nil).Once()

	phone := "555"
	_, err := suite.service.UpdateUser(ctx, suite.staff, "u1", dto.UpdateUserRequest{Phone: &phone})

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_SuperuserResetsPassword() {
	ctx := context.Background()
	stored := *suite.staff
	suite.mockUserRepo.On("FindUserByID", ctx, "s1").Return(&stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("reset")) == nil
	})).Return(nil).Once()
	suite.mockSessions.On("UpdateSession", ctx, "s1", mock.Anything).Return(nil, nil).Once()

	password := "reset"
	_, err := suite.service.UpdateUser(ctx, suite.superuser, "s1", dto.UpdateUserRequest{Password: &password})

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockSessions.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_RoleFlagsNeedSuperuser() {
	yes := true
	_, err := suite.service.UpdateUser(context.Background(), suite.staff, "u1", dto.UpdateUserRequest{IsStaff: &yes})
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser() {
	ctx := context.Background()
	suite.ErrorIs(suite.service.DeleteUser(ctx, suite.staff, "u1"), apperrors.ErrForbidden)
	suite.ErrorIs(suite.service.DeleteUser(ctx, suite.superuser, "root"), apperrors.ErrValidation)

	suite.mockUserRepo.On("DeleteUser", ctx, "u1").Return(nil).Once()
	suite.NoError(suite.service.DeleteUser(ctx, suite.superuser, "u1"))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestEnsureAdmin() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "admin@shop.io").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.IsSuperuser && user.IsStaff
	})).Return(nil).Once()

	admin, created, err := suite.service.EnsureAdmin(ctx, "admin@shop.io", "secret")
	suite.Require().NoError(err)
	suite.True(created)
	suite.True(admin.IsSuperuser)

	suite.mockUserRepo.On("FindUserByEmail", ctx, "admin@shop.io").Return(admin, nil).Once()
	_, created, err = suite.service.EnsureAdmin(ctx, "admin@shop.io", "secret")
	suite.Require().NoError(err)
	suite.False(created)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
